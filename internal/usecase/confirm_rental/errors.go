package confirm_rental

import "errors"

var (
	// ErrRentalNotFound возвращается, когда аренда не найдена
	ErrRentalNotFound = errors.New("rental not found")

	// ErrRentalNotPending возвращается, когда аренда уже не ожидает подтверждения
	ErrRentalNotPending = errors.New("rental is not pending")

	// ErrActionNotAvailable возвращается, если действие не предлагается для текущих конфликтов
	ErrActionNotAvailable = errors.New("resolution action is not available for this rental")

	// ErrUnitNotAvailable возвращается, если выбранный юнит занят или не той модели
	ErrUnitNotAvailable = errors.New("selected unit is not available for the rental dates")

	// ErrConflictsChanged возвращается, если конфликты изменились во время подтверждения
	ErrConflictsChanged = errors.New("conflicting rentals changed, reload the confirmation plan")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("internal error")
)
