package mailer

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// sendFunc отправляет письмо и возвращает HTTP статус и тело ответа SendGrid
type sendFunc func(ctx context.Context, msg *mail.SGMailV3) (int, string, error)

// Client отправляет письма через SendGrid
type Client struct {
	fromEmail string
	fromName  string
	send      sendFunc
	log       Logger
}

// NewClient создает клиента SendGrid
func NewClient(apiKey, fromEmail, fromName string, log Logger) *Client {
	sg := sendgrid.NewSendClient(apiKey)

	return &Client{
		fromEmail: fromEmail,
		fromName:  fromName,
		send: func(ctx context.Context, msg *mail.SGMailV3) (int, string, error) {
			resp, err := sg.SendWithContext(ctx, msg)
			if err != nil {
				return 0, "", err
			}
			return resp.StatusCode, resp.Body, nil
		},
		log: log,
	}
}

// Send отправляет письмо одному получателю
func (c *Client) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return ErrNoRecipient
	}

	from := mail.NewEmail(c.fromName, c.fromEmail)
	to := mail.NewEmail(msg.ToName, msg.To)
	email := mail.NewSingleEmail(from, msg.Subject, to, msg.PlainText, msg.HTML)

	status, body, err := c.send(ctx, email)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	if status >= 400 {
		return fmt.Errorf("%w: status %d, body: %s", ErrSendFailed, status, body)
	}

	c.log.Info("Mailer: sent %q to %s", msg.Subject, msg.To)
	return nil
}
