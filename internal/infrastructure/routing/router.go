package routing

import (
	"sort"
	"strings"
)

// Router maps event types to broker topics. The table is fixed at construction.
type Router struct {
	routes map[string]string
}

func New(routes map[string]string) *Router {
	r := &Router{routes: make(map[string]string, len(routes))}

	for eventType, topic := range routes {
		eventType = strings.TrimSpace(eventType)
		topic = strings.TrimSpace(topic)
		if eventType == "" || topic == "" {
			continue
		}
		r.routes[eventType] = topic
	}

	return r
}

func (r *Router) Resolve(eventType string) (string, bool) {
	topic, ok := r.routes[eventType]
	return topic, ok
}

// Topics returns the distinct destination topics, sorted.
func (r *Router) Topics() []string {
	seen := make(map[string]struct{}, len(r.routes))
	topics := make([]string, 0, len(r.routes))

	for _, topic := range r.routes {
		if _, ok := seen[topic]; ok {
			continue
		}
		seen[topic] = struct{}{}
		topics = append(topics, topic)
	}

	sort.Strings(topics)

	return topics
}
