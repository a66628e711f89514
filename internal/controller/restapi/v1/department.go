package v1

import (
	"net/http"
	"strings"
	"time"

	"github.com/andreyxaxa/hr-outbox/internal/controller/restapi/v1/request"
	"github.com/andreyxaxa/hr-outbox/internal/controller/restapi/v1/response"
	"github.com/andreyxaxa/hr-outbox/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// @Summary 	Create department
// @Description Creates a department and records DepartmentCreated in the outbox
// @Tags 		departments
// @Accept 		json
// @Produce 	json
// @Param 		body body request.CreateDepartment true "Department"
// @Success 	201 {object} response.Department
// @Failure 	400 {object} response.Error "Invalid body"
// @Failure 	409 {object} response.Error "Code already taken"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/departments [post]
func (r *V1) createDepartment(ctx *fiber.Ctx) error {
	var body request.CreateDepartment
	if err := ctx.BodyParser(&body); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid request body")
	}

	if strings.TrimSpace(body.Name) == "" || strings.TrimSpace(body.Code) == "" {
		return errorResponse(ctx, http.StatusBadRequest, "name and code are required")
	}

	d, err := r.dep.Create(ctx.UserContext(), dto.CreateDepartment{Name: body.Name, Code: body.Code})
	if err != nil {
		return r.domainErrorResponse(ctx, err, "createDepartment")
	}

	return ctx.Status(http.StatusCreated).JSON(response.Department{
		ID:        d.ID.String(),
		Name:      d.Name,
		Code:      d.Code,
		CreatedAt: d.CreatedAt.Format(time.RFC3339),
	})
}
