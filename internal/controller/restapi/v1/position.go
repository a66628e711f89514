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

// @Summary 	Create position
// @Description Creates a position with a salary band and records PositionCreated in the outbox
// @Tags 		positions
// @Accept 		json
// @Produce 	json
// @Param 		body body request.CreatePosition true "Position"
// @Success 	201 {object} response.Position
// @Failure 	400 {object} response.Error "Invalid body or salary band"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/positions [post]
func (r *V1) createPosition(ctx *fiber.Ctx) error {
	var body request.CreatePosition
	if err := ctx.BodyParser(&body); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid request body")
	}

	if strings.TrimSpace(body.Title) == "" {
		return errorResponse(ctx, http.StatusBadRequest, "title is required")
	}

	if body.MinSalary.IsNegative() || body.MinSalary.GreaterThan(body.MaxSalary) {
		return errorResponse(ctx, http.StatusBadRequest, "min_salary must be between 0 and max_salary")
	}

	p, err := r.pos.Create(ctx.UserContext(), dto.CreatePosition{
		Title:     body.Title,
		MinSalary: body.MinSalary,
		MaxSalary: body.MaxSalary,
	})
	if err != nil {
		return r.domainErrorResponse(ctx, err, "createPosition")
	}

	return ctx.Status(http.StatusCreated).JSON(response.Position{
		ID:        p.ID.String(),
		Title:     p.Title,
		MinSalary: p.MinSalary.StringFixed(2),
		MaxSalary: p.MaxSalary.StringFixed(2),
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	})
}
