package request_extension

import (
	"errors"

	"github.com/m04kA/SMC-RentalService/internal/usecase/check_availability"
)

var (
	// ErrRentalNotFound возвращается, когда аренда не найдена
	ErrRentalNotFound = errors.New("rental not found")

	// ErrUnauthorized возвращается, когда аренда принадлежит другому пользователю
	ErrUnauthorized = errors.New("rental belongs to another user")

	// ErrEndDateNotAfterCurrent возвращается, если новая дата окончания не позже текущей
	ErrEndDateNotAfterCurrent = check_availability.ErrEndDateNotAfterCurrent

	// ErrCameraUnavailable возвращается, когда камера занята на период продления
	ErrCameraUnavailable = errors.New("camera is not available for the requested dates")

	// ErrPendingExtensionExists возвращается, когда у аренды уже есть pending продление
	ErrPendingExtensionExists = errors.New("rental already has a pending extension request")

	// ErrPaymentFailed возвращается, если не удалось создать платёж; продление при этом не создаётся
	ErrPaymentFailed = errors.New("failed to create extension payment, extension was not created")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("internal error")
)
