package v1

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/andreyxaxa/hr-outbox/internal/controller/restapi/v1/response"
	"github.com/andreyxaxa/hr-outbox/internal/dto"
	"github.com/andreyxaxa/hr-outbox/internal/entity"
	"github.com/andreyxaxa/hr-outbox/pkg/logger"
	"github.com/andreyxaxa/hr-outbox/pkg/types/errs"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var createdAt = time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

type stubEmployees struct {
	employee  *entity.Employee
	err       error
	gotStatus entity.EmployeeStatus
	gotCreate dto.CreateEmployee
}

func (s *stubEmployees) Create(_ context.Context, in dto.CreateEmployee) (*entity.Employee, error) {
	s.gotCreate = in
	return s.employee, s.err
}

func (s *stubEmployees) ChangeStatus(_ context.Context, _ uuid.UUID, status entity.EmployeeStatus) (*entity.Employee, error) {
	s.gotStatus = status
	return s.employee, s.err
}

func (s *stubEmployees) Get(context.Context, uuid.UUID) (*entity.Employee, error) {
	return s.employee, s.err
}

type stubDepartments struct{ err error }

func (s stubDepartments) Create(_ context.Context, in dto.CreateDepartment) (*entity.Department, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &entity.Department{ID: uuid.New(), Name: in.Name, Code: strings.ToUpper(in.Code), CreatedAt: createdAt}, nil
}

type stubPositions struct{}

func (stubPositions) Create(_ context.Context, in dto.CreatePosition) (*entity.Position, error) {
	return &entity.Position{ID: uuid.New(), Title: in.Title, MinSalary: in.MinSalary, MaxSalary: in.MaxSalary, CreatedAt: createdAt}, nil
}

type stubOutbox struct {
	msg *entity.OutboxMessage
	err error
}

func (s stubOutbox) Write(context.Context, []entity.DomainEvent) error { return nil }
func (s stubOutbox) FetchDue(context.Context, time.Time, int) ([]*entity.OutboxMessage, error) {
	return nil, nil
}
func (s stubOutbox) Save(context.Context, *entity.OutboxMessage) error { return nil }
func (s stubOutbox) GetMessage(context.Context, uuid.UUID) (*entity.OutboxMessage, error) {
	return s.msg, s.err
}

func newTestApp(emp *stubEmployees, dep stubDepartments, ob stubOutbox) *fiber.App {
	app := fiber.New()
	NewHRRoutes(app.Group("/v1"), emp, dep, stubPositions{}, ob, logger.NewNop())
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, data
}

func activeEmployee() *entity.Employee {
	return &entity.Employee{
		ID:        uuid.New(),
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Status:    entity.EmployeeActive,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestCreateEmployee(t *testing.T) {
	t.Parallel()

	emp := &stubEmployees{employee: activeEmployee()}
	app := newTestApp(emp, stubDepartments{}, stubOutbox{})

	code, body := do(t, app, http.MethodPost, "/v1/employees",
		`{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com"}`)
	require.Equal(t, http.StatusCreated, code)

	var got response.Employee
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, emp.employee.ID.String(), got.ID)
	assert.Equal(t, "ACTIVE", got.Status)
	assert.Nil(t, got.DepartmentID)
	assert.Equal(t, "ada@example.com", emp.gotCreate.Email)
}

func TestCreateEmployeeBadRequests(t *testing.T) {
	t.Parallel()

	app := newTestApp(&stubEmployees{employee: activeEmployee()}, stubDepartments{}, stubOutbox{})

	for _, body := range []string{
		`{`,
		`{"first_name":"","last_name":"Lovelace","email":"ada@example.com"}`,
		`{"first_name":"Ada","last_name":"Lovelace"}`,
	} {
		code, _ := do(t, app, http.MethodPost, "/v1/employees", body)
		assert.Equal(t, http.StatusBadRequest, code, body)
	}
}

func TestDomainErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("EmployeeUseCase - Create: %w", errs.ErrValidation), http.StatusBadRequest},
		{errs.ErrAlreadyExists, http.StatusConflict},
		{errs.ErrStatusUnchanged, http.StatusConflict},
		{errs.ErrEmployeeTerminated, http.StatusConflict},
		{errs.ErrRecordNotFound, http.StatusNotFound},
		{fmt.Errorf("pool closed"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		app := newTestApp(&stubEmployees{err: tt.err}, stubDepartments{}, stubOutbox{})

		code, body := do(t, app, http.MethodPatch, "/v1/employees/"+uuid.NewString()+"/status", `{"status":"on_leave"}`)
		assert.Equal(t, tt.code, code, tt.err.Error())

		var got response.Error
		require.NoError(t, json.Unmarshal(body, &got))
		assert.NotEmpty(t, got.Error)
		assert.NotContains(t, got.Error, "EmployeeUseCase")
	}
}

func TestChangeEmployeeStatus(t *testing.T) {
	t.Parallel()

	emp := &stubEmployees{employee: activeEmployee()}
	app := newTestApp(emp, stubDepartments{}, stubOutbox{})

	code, _ := do(t, app, http.MethodPatch, "/v1/employees/"+emp.employee.ID.String()+"/status", `{"status":"suspended"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, entity.EmployeeSuspended, emp.gotStatus)

	code, _ = do(t, app, http.MethodPatch, "/v1/employees/"+emp.employee.ID.String()+"/status", `{"status":"RETIRED"}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, app, http.MethodPatch, "/v1/employees/not-a-uuid/status", `{"status":"ACTIVE"}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestGetEmployee(t *testing.T) {
	t.Parallel()

	app := newTestApp(&stubEmployees{err: errs.ErrRecordNotFound}, stubDepartments{}, stubOutbox{})

	code, _ := do(t, app, http.MethodGet, "/v1/employees/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestCreateDepartmentAndPosition(t *testing.T) {
	t.Parallel()

	app := newTestApp(&stubEmployees{}, stubDepartments{}, stubOutbox{})

	code, body := do(t, app, http.MethodPost, "/v1/departments", `{"name":"Finance","code":"fin"}`)
	require.Equal(t, http.StatusCreated, code)
	var dep response.Department
	require.NoError(t, json.Unmarshal(body, &dep))
	assert.Equal(t, "FIN", dep.Code)

	code, body = do(t, app, http.MethodPost, "/v1/positions", `{"title":"Analyst","min_salary":"50000","max_salary":70000.5}`)
	require.Equal(t, http.StatusCreated, code)
	var pos response.Position
	require.NoError(t, json.Unmarshal(body, &pos))
	assert.Equal(t, "50000.00", pos.MinSalary)
	assert.Equal(t, "70000.50", pos.MaxSalary)

	code, _ = do(t, app, http.MethodPost, "/v1/positions", `{"title":"Analyst","min_salary":"90000","max_salary":"70000"}`)
	assert.Equal(t, http.StatusBadRequest, code)

	conflict := newTestApp(&stubEmployees{}, stubDepartments{err: errs.ErrAlreadyExists}, stubOutbox{})
	code, _ = do(t, conflict, http.MethodPost, "/v1/departments", `{"name":"Finance","code":"FIN"}`)
	assert.Equal(t, http.StatusConflict, code)
}

func TestGetOutboxMessage(t *testing.T) {
	t.Parallel()

	next := createdAt.Add(10 * time.Second)
	processed := createdAt.Add(5 * time.Second)
	msg := &entity.OutboxMessage{
		ID:            uuid.New(),
		AggregateID:   uuid.New(),
		AggregateType: "Employee",
		EventType:     "EmployeeCreated",
		Status:        entity.OutboxFailed,
		OccurredOn:    createdAt,
		ProcessedAt:   &processed,
		RetryAttempts: 2,
		NextAttemptAt: &next,
	}
	app := newTestApp(&stubEmployees{}, stubDepartments{}, stubOutbox{msg: msg})

	code, body := do(t, app, http.MethodGet, "/v1/outbox/messages/"+msg.ID.String(), "")
	require.Equal(t, http.StatusOK, code)

	var got response.OutboxMessage
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "FAILED", got.Status)
	assert.Equal(t, 2, got.RetryAttempts)
	require.NotNil(t, got.NextAttemptAt)
	assert.Equal(t, "2025-06-02T12:00:10Z", *got.NextAttemptAt)

	missing := newTestApp(&stubEmployees{}, stubDepartments{}, stubOutbox{err: errs.ErrRecordNotFound})
	code, _ = do(t, missing, http.MethodGet, "/v1/outbox/messages/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, code)
}
