package extensions

import "errors"

var (
	// ErrExtensionNotFound возвращается, когда продление не найдено
	ErrExtensionNotFound = errors.New("extension not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
