package approve_extension

import "errors"

var (
	// ErrExtensionNotFound возвращается, когда продление не найдено
	ErrExtensionNotFound = errors.New("extension not found")

	// ErrExtensionNotPending возвращается, когда продление уже одобрено или отклонено
	ErrExtensionNotPending = errors.New("extension is already decided")

	// ErrCameraUnavailable возвращается, когда окно продления заняли после запроса; причина добавляется к сообщению
	ErrCameraUnavailable = errors.New("camera is not available for the requested dates")

	// ErrRentalUpdateFailed возвращается, если аренду не удалось обновить; одобрение откатывается
	ErrRentalUpdateFailed = errors.New("extension approved but rental update failed; changes rolled back")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("internal error")
)
