package create_rental

import "errors"

var (
	// ErrCameraNotFound возвращается, когда камера не найдена
	ErrCameraNotFound = errors.New("camera not found")

	// ErrCameraWithdrawn возвращается, когда юнит снят с аренды (ремонт, продажа)
	ErrCameraWithdrawn = errors.New("camera is withdrawn from rental")

	// ErrInvalidDates возвращается при некорректном периоде аренды
	ErrInvalidDates = errors.New("invalid rental dates")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("internal error")
)
