package v1

import (
	"errors"
	"net/http"

	"github.com/andreyxaxa/hr-outbox/internal/controller/restapi/v1/response"
	"github.com/andreyxaxa/hr-outbox/pkg/types/errs"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func errorResponse(ctx *fiber.Ctx, code int, msg string) error {
	return ctx.Status(code).JSON(response.Error{Error: msg})
}

// domainErrorResponse переводит ошибку use case в HTTP-ответ. Все, что не распознано, логируется как 500.
func (r *V1) domainErrorResponse(ctx *fiber.Ctx, err error, where string) error {
	switch {
	case errors.Is(err, errs.ErrValidation):
		return errorResponse(ctx, http.StatusBadRequest, errs.ErrValidation.Error())
	case errors.Is(err, errs.ErrInvalidEmployeeStatus):
		return errorResponse(ctx, http.StatusBadRequest, errs.ErrInvalidEmployeeStatus.Error())
	case errors.Is(err, errs.ErrRecordNotFound):
		return errorResponse(ctx, http.StatusNotFound, errs.ErrRecordNotFound.Error())
	case errors.Is(err, errs.ErrAlreadyExists):
		return errorResponse(ctx, http.StatusConflict, errs.ErrAlreadyExists.Error())
	case errors.Is(err, errs.ErrStatusUnchanged):
		return errorResponse(ctx, http.StatusConflict, errs.ErrStatusUnchanged.Error())
	case errors.Is(err, errs.ErrEmployeeTerminated):
		return errorResponse(ctx, http.StatusConflict, errs.ErrEmployeeTerminated.Error())
	}

	r.logger.Error(err, "restapi - v1 - %s", where)

	return errorResponse(ctx, http.StatusInternalServerError, "internal error")
}

func parseID(ctx *fiber.Ctx) (uuid.UUID, bool) {
	idStr := ctx.Params("id")
	if idStr == "" {
		return uuid.Nil, false
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, false
	}

	return id, true
}
