package v1

import (
	"net/http"
	"strings"
	"time"

	"github.com/andreyxaxa/hr-outbox/internal/controller/restapi/v1/request"
	"github.com/andreyxaxa/hr-outbox/internal/controller/restapi/v1/response"
	"github.com/andreyxaxa/hr-outbox/internal/dto"
	"github.com/andreyxaxa/hr-outbox/internal/entity"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// @Summary 	Hire employee
// @Description Creates an ACTIVE employee and records EmployeeCreated in the outbox
// @Tags 		employees
// @Accept 		json
// @Produce 	json
// @Param 		body body request.CreateEmployee true "Employee"
// @Success 	201 {object} response.Employee
// @Failure 	400 {object} response.Error "Invalid body"
// @Failure 	409 {object} response.Error "Email already taken"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/employees [post]
func (r *V1) createEmployee(ctx *fiber.Ctx) error {
	var body request.CreateEmployee
	if err := ctx.BodyParser(&body); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid request body")
	}

	if strings.TrimSpace(body.FirstName) == "" || strings.TrimSpace(body.LastName) == "" {
		return errorResponse(ctx, http.StatusBadRequest, "first_name and last_name are required")
	}

	if strings.TrimSpace(body.Email) == "" {
		return errorResponse(ctx, http.StatusBadRequest, "email is required")
	}

	e, err := r.emp.Create(ctx.UserContext(), dto.CreateEmployee{
		FirstName:    body.FirstName,
		LastName:     body.LastName,
		Email:        body.Email,
		DepartmentID: body.DepartmentID,
		PositionID:   body.PositionID,
	})
	if err != nil {
		return r.domainErrorResponse(ctx, err, "createEmployee")
	}

	return ctx.Status(http.StatusCreated).JSON(employeeResponse(e))
}

// @Summary 	Get employee
// @Tags 		employees
// @Produce 	json
// @Param 		id path string true "Employee ID(uuid)"
// @Success 	200 {object} response.Employee
// @Failure 	400 {object} response.Error "Invalid ID"
// @Failure 	404 {object} response.Error "Employee not found"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/employees/{id} [get]
func (r *V1) getEmployee(ctx *fiber.Ctx) error {
	id, ok := parseID(ctx)
	if !ok {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	e, err := r.emp.Get(ctx.UserContext(), id)
	if err != nil {
		return r.domainErrorResponse(ctx, err, "getEmployee")
	}

	return ctx.Status(http.StatusOK).JSON(employeeResponse(e))
}

// @Summary 	Change employee status
// @Description Moves the employee to a new status and records EmployeeStatusChanged in the outbox
// @Tags 		employees
// @Accept 		json
// @Produce 	json
// @Param 		id 	 path string true "Employee ID(uuid)"
// @Param 		body body request.ChangeEmployeeStatus true "New status" Enums(ACTIVE, ON_LEAVE, SUSPENDED, TERMINATED)
// @Success 	200 {object} response.Employee
// @Failure 	400 {object} response.Error "Invalid ID or status"
// @Failure 	404 {object} response.Error "Employee not found"
// @Failure 	409 {object} response.Error "Status unchanged or employee terminated"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/employees/{id}/status [patch]
func (r *V1) changeEmployeeStatus(ctx *fiber.Ctx) error {
	id, ok := parseID(ctx)
	if !ok {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	var body request.ChangeEmployeeStatus
	if err := ctx.BodyParser(&body); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid request body")
	}

	status, err := entity.ParseEmployeeStatus(strings.ToUpper(strings.TrimSpace(body.Status)))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid status. Allowed: ACTIVE, ON_LEAVE, SUSPENDED, TERMINATED")
	}

	e, err := r.emp.ChangeStatus(ctx.UserContext(), id, status)
	if err != nil {
		return r.domainErrorResponse(ctx, err, "changeEmployeeStatus")
	}

	return ctx.Status(http.StatusOK).JSON(employeeResponse(e))
}

func employeeResponse(e *entity.Employee) response.Employee {
	return response.Employee{
		ID:           e.ID.String(),
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		Email:        e.Email,
		DepartmentID: optionalID(e.DepartmentID),
		PositionID:   optionalID(e.PositionID),
		Status:       string(e.Status),
		CreatedAt:    e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    e.UpdatedAt.Format(time.RFC3339),
	}
}

func optionalID(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}

	s := id.String()
	return &s
}
