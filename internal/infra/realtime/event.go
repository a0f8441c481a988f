package realtime

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Entity тип изменившейся сущности
type Entity string

const (
	EntityRental    Entity = "rental"
	EntityExtension Entity = "extension"
	EntityPayment   Entity = "payment"
)

// Action тип изменения
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
)

// ErrInvalidEvent возвращается для сообщения, которое не удалось разобрать
var ErrInvalidEvent = errors.New("realtime: invalid event")

// Event уведомление об изменении строки. Несёт только идентификатор,
// подписчики перечитывают актуальные данные сами.
type Event struct {
	Entity Entity `json:"entity"`
	ID     int64  `json:"id"`
	Action Action `json:"action"`
}

// RentalCreated событие новой заявки на аренду
func RentalCreated(id int64) Event {
	return Event{Entity: EntityRental, ID: id, Action: ActionCreated}
}

// RentalUpdated событие изменения аренды
func RentalUpdated(id int64) Event {
	return Event{Entity: EntityRental, ID: id, Action: ActionUpdated}
}

// ExtensionCreated событие создания продления
func ExtensionCreated(id int64) Event {
	return Event{Entity: EntityExtension, ID: id, Action: ActionCreated}
}

// ExtensionUpdated событие изменения продления
func ExtensionUpdated(id int64) Event {
	return Event{Entity: EntityExtension, ID: id, Action: ActionUpdated}
}

// PaymentCreated событие создания платежа
func PaymentCreated(id int64) Event {
	return Event{Entity: EntityPayment, ID: id, Action: ActionCreated}
}

// PaymentUpdated событие изменения платежа
func PaymentUpdated(id int64) Event {
	return Event{Entity: EntityPayment, ID: id, Action: ActionUpdated}
}

func decodeEvent(payload string) (Event, error) {
	var ev Event
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}

	switch ev.Entity {
	case EntityRental, EntityExtension, EntityPayment:
	default:
		return Event{}, fmt.Errorf("%w: unknown entity %q", ErrInvalidEvent, ev.Entity)
	}

	if ev.ID <= 0 {
		return Event{}, fmt.Errorf("%w: id must be positive", ErrInvalidEvent)
	}

	return ev, nil
}
