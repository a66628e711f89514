package v1

import (
	"net/http"
	"time"

	"github.com/andreyxaxa/hr-outbox/internal/controller/restapi/v1/response"
	"github.com/gofiber/fiber/v2"
)

// @Summary 	Get outbox message
// @Description Returns the delivery state of one outbox message (status, attempts, next attempt)
// @Tags 		outbox
// @Produce 	json
// @Param 		id path string true "Message ID(uuid), equal to the event id"
// @Success 	200 {object} response.OutboxMessage
// @Failure 	400 {object} response.Error "Invalid ID"
// @Failure 	404 {object} response.Error "Message not found"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/outbox/messages/{id} [get]
func (r *V1) getOutboxMessage(ctx *fiber.Ctx) error {
	id, ok := parseID(ctx)
	if !ok {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	msg, err := r.outbox.GetMessage(ctx.UserContext(), id)
	if err != nil {
		return r.domainErrorResponse(ctx, err, "getOutboxMessage")
	}

	return ctx.Status(http.StatusOK).JSON(response.OutboxMessage{
		ID:            msg.ID.String(),
		AggregateID:   msg.AggregateID.String(),
		AggregateType: msg.AggregateType,
		EventType:     msg.EventType,
		Status:        string(msg.Status),
		OccurredOn:    msg.OccurredOn.Format(time.RFC3339Nano),
		ProcessedAt:   optionalTime(msg.ProcessedAt),
		RetryAttempts: msg.RetryAttempts,
		NextAttemptAt: optionalTime(msg.NextAttemptAt),
	})
}

func optionalTime(t *time.Time) *string {
	if t == nil {
		return nil
	}

	s := t.Format(time.RFC3339Nano)
	return &s
}
