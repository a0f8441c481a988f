package pushnotify

import (
	"context"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

var (
	// ErrNoTokens возвращается, если у пользователя нет зарегистрированных устройств
	ErrNoTokens = errors.New("pushnotify: no device tokens")

	// ErrSendFailed возвращается, если ни одно сообщение не доставлено
	ErrSendFailed = errors.New("pushnotify: send failed")

	// ErrInternal возвращается при ошибке инициализации клиента
	ErrInternal = errors.New("pushnotify: internal error")
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type messenger interface {
	SendEachForMulticast(ctx context.Context, message *messaging.MulticastMessage) (*messaging.BatchResponse, error)
}

// Notification push уведомление
type Notification struct {
	Title string
	Body  string
	Data  map[string]string
}

// Client отправляет web/mobile push через Firebase Cloud Messaging
type Client struct {
	fcm messenger
	log Logger
}

// NewClient инициализирует Firebase приложение по файлу сервисного аккаунта
func NewClient(ctx context.Context, credentialsFile string, log Logger) (*Client, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("%w: init firebase app: %v", ErrInternal, err)
	}

	fcm, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: init messaging client: %v", ErrInternal, err)
	}

	return &Client{fcm: fcm, log: log}, nil
}

// Send отправляет уведомление на все устройства пользователя.
// Частичная доставка не считается ошибкой.
func (c *Client) Send(ctx context.Context, tokens []string, n Notification) error {
	if len(tokens) == 0 {
		return ErrNoTokens
	}

	msg := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Body,
		},
		Data: n.Data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
		Webpush: &messaging.WebpushConfig{
			Headers: map[string]string{"Urgency": "high"},
		},
	}

	resp, err := c.fcm.SendEachForMulticast(ctx, msg)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	if resp.SuccessCount == 0 {
		return fmt.Errorf("%w: all %d messages failed", ErrSendFailed, resp.FailureCount)
	}

	if resp.FailureCount > 0 {
		c.log.Warn("PushNotify: %d of %d messages failed", resp.FailureCount, len(tokens))
	}

	c.log.Info("PushNotify: sent %q to %d devices", n.Title, resp.SuccessCount)
	return nil
}
