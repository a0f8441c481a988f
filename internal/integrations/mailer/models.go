package mailer

import "errors"

var (
	// ErrNoRecipient возвращается, если не указан адрес получателя
	ErrNoRecipient = errors.New("mailer: recipient is empty")

	// ErrSendFailed возвращается при ошибке отправки
	ErrSendFailed = errors.New("mailer: send failed")
)

// Message письмо
type Message struct {
	To        string
	ToName    string
	Subject   string
	PlainText string
	HTML      string
}
