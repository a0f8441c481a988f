package notifications

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/integrations/mailer"
	"github.com/m04kA/SMC-RentalService/internal/integrations/pushnotify"
	"github.com/m04kA/SMC-RentalService/internal/integrations/userservice"
	"github.com/m04kA/SMC-RentalService/pkg/ptr"
)

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetContact(ctx context.Context, userID int64) (*userservice.Contact, error)
}

// Mailer интерфейс отправки email
type Mailer interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// Pusher интерфейс отправки push уведомлений
type Pusher interface {
	Send(ctx context.Context, tokens []string, n pushnotify.Notification) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// ErrNotifyFailed возвращается, если не удалось доставить уведомление ни одним каналом
var ErrNotifyFailed = errors.New("notifications: failed to notify user")

// Service уведомляет арендаторов о решениях админа.
// mailer и pusher могут быть nil, тогда канал пропускается.
type Service struct {
	users  UserServiceClient
	mailer Mailer
	pusher Pusher
	logger Logger
}

// NewService создает сервис уведомлений
func NewService(users UserServiceClient, mailer Mailer, pusher Pusher, logger Logger) *Service {
	return &Service{
		users:  users,
		mailer: mailer,
		pusher: pusher,
		logger: logger,
	}
}

type notice struct {
	subject string
	text    string
	data    map[string]string
}

// RentalConfirmed аренда подтверждена
func (s *Service) RentalConfirmed(ctx context.Context, r *domain.Rental) error {
	return s.notify(ctx, r.UserID, notice{
		subject: "Your rental is confirmed",
		text: fmt.Sprintf("Your rental of %s from %s to %s is confirmed.",
			r.CameraName, r.StartDate, r.EndDate),
		data: rentalData(r.ID, "rental_confirmed"),
	})
}

// RentalRejected аренда отклонена с причиной
func (s *Service) RentalRejected(ctx context.Context, r *domain.Rental, reason string) error {
	return s.notify(ctx, r.UserID, notice{
		subject: "Your rental request was declined",
		text: fmt.Sprintf("Your rental of %s from %s to %s was declined. Reason: %s",
			r.CameraName, r.StartDate, r.EndDate, reason),
		data: rentalData(r.ID, "rental_rejected"),
	})
}

// ExtensionApproved продление одобрено
func (s *Service) ExtensionApproved(ctx context.Context, ext *domain.ExtensionWithRental) error {
	return s.notify(ctx, ext.UserID, notice{
		subject: "Your rental extension is approved",
		text: fmt.Sprintf("Your rental of %s now ends on %s (%d extra days, %.2f).",
			ext.CameraName, ext.RequestedEndDate, ext.ExtensionDays, ext.AdditionalPrice),
		data: extensionData(ext, "extension_approved"),
	})
}

// ExtensionRejected продление отклонено
func (s *Service) ExtensionRejected(ctx context.Context, ext *domain.ExtensionWithRental, notes *string) error {
	text := fmt.Sprintf("Your request to extend the rental of %s until %s was declined.",
		ext.CameraName, ext.RequestedEndDate)
	if n := ptr.Deref(notes); n != "" {
		text += " Note: " + n
	}

	return s.notify(ctx, ext.UserID, notice{
		subject: "Your rental extension was declined",
		text:    text,
		data:    extensionData(ext, "extension_rejected"),
	})
}

func (s *Service) notify(ctx context.Context, userID int64, n notice) error {
	if s.mailer == nil && s.pusher == nil {
		return nil
	}

	contact, err := s.users.GetContact(ctx, userID)
	if err != nil {
		return fmt.Errorf("%w: user=%d: get contact: %v", ErrNotifyFailed, userID, err)
	}

	var errs []error

	if s.mailer != nil && contact.Email != "" {
		err := s.mailer.Send(ctx, mailer.Message{
			To:        contact.Email,
			ToName:    contact.FullName,
			Subject:   n.subject,
			PlainText: n.text,
			HTML:      "<p>" + n.text + "</p>",
		})
		if err != nil {
			errs = append(errs, err)
		}
	}

	if s.pusher != nil && len(contact.FCMTokens) > 0 {
		err := s.pusher.Send(ctx, contact.FCMTokens, pushnotify.Notification{
			Title: n.subject,
			Body:  n.text,
			Data:  n.data,
		})
		if err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: user=%d: %w", ErrNotifyFailed, userID, errors.Join(errs...))
	}

	s.logger.Info("Notifications: user=%d notified: %s", userID, n.subject)
	return nil
}

func rentalData(rentalID int64, event string) map[string]string {
	return map[string]string{
		"event":    event,
		"rentalId": strconv.FormatInt(rentalID, 10),
	}
}

func extensionData(ext *domain.ExtensionWithRental, event string) map[string]string {
	data := rentalData(ext.RentalID, event)
	data["extensionId"] = strconv.FormatInt(ext.ID, 10)
	return data
}
