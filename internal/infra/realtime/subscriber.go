package realtime

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Handler обработчик входящего события
type Handler func(ctx context.Context, ev Event)

// Subscriber читает события из Redis канала
type Subscriber struct {
	client  *redis.Client
	channel string
	log     Logger
}

// NewSubscriber создает subscriber
func NewSubscriber(client *redis.Client, channel string, log Logger) *Subscriber {
	return &Subscriber{client: client, channel: channel, log: log}
}

// Run блокируется до отмены ctx, вызывая handler для каждого события
func (s *Subscriber) Run(ctx context.Context, handler Handler) error {
	pubsub := s.client.Subscribe(ctx, s.channel)
	defer pubsub.Close()

	// Дожидаемся подтверждения подписки
	if _, err := pubsub.Receive(ctx); err != nil {
		return err
	}

	s.log.Info("Realtime: subscribed to channel %s", s.channel)

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			s.log.Info("Realtime: subscriber stopped")
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			dispatch(ctx, msg.Payload, handler, s.log)
		}
	}
}

func dispatch(ctx context.Context, payload string, handler Handler, log Logger) {
	ev, err := decodeEvent(payload)
	if err != nil {
		log.Warn("Realtime: skip message: %v", err)
		return
	}
	handler(ctx, ev)
}
