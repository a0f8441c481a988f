package payments

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда платёж не найден
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrExtensionNotFound возвращается, когда продление не найдено
	ErrExtensionNotFound = errors.New("extension not found")

	// ErrRentalNotFound возвращается, когда аренда не найдена
	ErrRentalNotFound = errors.New("rental not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrPaymentFinal возвращается при попытке изменить подтверждённый или отклонённый платёж
	ErrPaymentFinal = errors.New("payment is already verified or rejected")

	// ErrProofAlreadyAttached возвращается, если чек уже приложен
	ErrProofAlreadyAttached = errors.New("payment proof is already attached")

	// ErrExtensionRejected возвращается при попытке оплатить отклонённое продление
	ErrExtensionRejected = errors.New("extension is rejected")

	// ErrReasonRequired возвращается, если не указана причина отклонения
	ErrReasonRequired = errors.New("rejection reason is required")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidProof возвращается для некорректного файла чека
	ErrInvalidProof = errors.New("invalid payment proof")

	// ErrStorageUnavailable возвращается, если хранилище файлов выключено или недоступно
	ErrStorageUnavailable = errors.New("payment proof storage is unavailable")

	// ErrPaymentExists возвращается, если платёж для продления создан параллельно в той же транзакции
	ErrPaymentExists = errors.New("payment for extension already exists")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
