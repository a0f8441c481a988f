package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-RentalService/pkg/metrics"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type redisPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// Publisher публикует события изменений в Redis канал
type Publisher struct {
	client  redisPublisher
	channel string
	metrics *metrics.Metrics
	log     Logger
}

// NewPublisher создает publisher. m может быть nil
func NewPublisher(client *redis.Client, channel string, m *metrics.Metrics, log Logger) *Publisher {
	return &Publisher{client: client, channel: channel, metrics: m, log: log}
}

// Publish отправляет события. Ошибки публикации только логируются.
func (p *Publisher) Publish(ctx context.Context, events ...Event) {
	for _, ev := range events {
		if err := p.publish(ctx, ev); err != nil {
			p.log.Warn("Realtime: failed to publish %s id=%d action=%s: %v", ev.Entity, ev.ID, ev.Action, err)
			p.observe(ev, "error")
			continue
		}
		p.observe(ev, "ok")
	}
}

func (p *Publisher) publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	return p.client.Publish(ctx, p.channel, payload).Err()
}

func (p *Publisher) observe(ev Event, result string) {
	if p.metrics == nil {
		return
	}
	p.metrics.RealtimeEventsTotal.WithLabelValues(string(ev.Entity), result).Inc()
}

// NoopPublisher используется, когда Redis выключен
type NoopPublisher struct{}

// Publish ничего не делает
func (NoopPublisher) Publish(context.Context, ...Event) {}
