package reject_extension

import "errors"

var (
	// ErrExtensionNotFound возвращается, когда продление не найдено
	ErrExtensionNotFound = errors.New("extension not found")

	// ErrExtensionNotPending возвращается, когда продление уже одобрено или отклонено
	ErrExtensionNotPending = errors.New("extension is already decided")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("internal error")
)
