package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouterResolve(t *testing.T) {
	t.Parallel()

	r := New(map[string]string{
		"EmployeeCreated":       "hr.employee.events",
		"EmployeeStatusChanged": " hr.employee.events ",
		"DepartmentCreated":     "hr.department.events",
		"PositionCreated":       "",
	})

	topic, ok := r.Resolve("EmployeeStatusChanged")
	assert.True(t, ok)
	assert.Equal(t, "hr.employee.events", topic)

	_, ok = r.Resolve("PositionCreated")
	assert.False(t, ok, "blank destinations are not routes")

	_, ok = r.Resolve("PayrollClosed")
	assert.False(t, ok)
}

func TestRouterTopics(t *testing.T) {
	t.Parallel()

	r := New(map[string]string{
		"EmployeeCreated":       "hr.employee.events",
		"EmployeeStatusChanged": "hr.employee.events",
		"DepartmentCreated":     "hr.department.events",
	})

	assert.Equal(t, []string{"hr.department.events", "hr.employee.events"}, r.Topics())
}
