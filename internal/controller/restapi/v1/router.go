package v1

import (
	"github.com/andreyxaxa/hr-outbox/internal/usecase"
	"github.com/andreyxaxa/hr-outbox/pkg/logger"
	"github.com/gofiber/fiber/v2"
)

func NewHRRoutes(
	apiV1Group fiber.Router,
	emp usecase.EmployeeUseCase,
	dep usecase.DepartmentUseCase,
	pos usecase.PositionUseCase,
	outbox usecase.OutboxUseCase,
	l logger.Interface,
) {
	r := &V1{emp: emp, dep: dep, pos: pos, outbox: outbox, logger: l}

	{
		apiV1Group.Post("/departments", r.createDepartment)
		apiV1Group.Post("/positions", r.createPosition)

		apiV1Group.Post("/employees", r.createEmployee)
		apiV1Group.Get("/employees/:id", r.getEmployee)
		apiV1Group.Patch("/employees/:id/status", r.changeEmployeeStatus)

		apiV1Group.Get("/outbox/messages/:id", r.getOutboxMessage)
	}
}
