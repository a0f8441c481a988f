package check_availability

import "errors"

var (
	// ErrRentalNotFound возвращается, когда аренда не найдена
	ErrRentalNotFound = errors.New("rental not found")

	// ErrAccessDenied возвращается, когда аренда принадлежит другому пользователю
	ErrAccessDenied = errors.New("access denied")

	// ErrEndDateNotAfterCurrent возвращается, если новая дата окончания не позже текущей
	ErrEndDateNotAfterCurrent = errors.New("new end date must be after current end date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("internal error")
)
