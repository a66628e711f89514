package headers

import (
	"context"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
)

// Carrier exposes kafka message headers as an otel TextMapCarrier.
type Carrier struct {
	Headers *[]kafka.Header
}

func (c Carrier) Get(key string) string {
	for _, h := range *c.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}

	return ""
}

func (c Carrier) Set(key, value string) {
	for i, h := range *c.Headers {
		if h.Key == key {
			(*c.Headers)[i].Value = []byte(value)
			return
		}
	}

	*c.Headers = append(*c.Headers, kafka.Header{Key: key, Value: []byte(value)})
}

func (c Carrier) Keys() []string {
	keys := make([]string, 0, len(*c.Headers))
	for _, h := range *c.Headers {
		keys = append(keys, h.Key)
	}

	return keys
}

// Inject пишет trace context из ctx в заголовки сообщения.
func Inject(ctx context.Context, hs *[]kafka.Header) {
	otel.GetTextMapPropagator().Inject(ctx, Carrier{Headers: hs})
}

// Extract возвращает ctx, продолжающий trace отправителя.
func Extract(ctx context.Context, hs []kafka.Header) context.Context {
	return otel.GetTextMapPropagator().Extract(ctx, Carrier{Headers: &hs})
}
