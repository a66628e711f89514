package app

import (
	"github.com/andreyxaxa/hr-outbox/internal/entity"
	"github.com/andreyxaxa/hr-outbox/internal/infrastructure"
	"github.com/andreyxaxa/hr-outbox/pkg/logger"
)

// checkRoutes warns about every known event type that has no destination.
// Such messages stay FAILED and are polled again on every tick until a route is added.
func checkRoutes(router infrastructure.DestinationResolver, l logger.Interface) int {
	missing := 0

	for _, t := range entity.EventTypes() {
		if _, ok := router.Resolve(string(t)); !ok {
			l.Warn("app - checkRoutes - no destination configured for event type %s", t)
			missing++
		}
	}

	return missing
}
