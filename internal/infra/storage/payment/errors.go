package payment

import "errors"

// ExtensionConstraint уникальность платежа по extension_id
const ExtensionConstraint = "uq_payments_extension_id"

var (
	// ErrPaymentNotFound возвращается, когда платёж не найден
	ErrPaymentNotFound = errors.New("payment.repository: payment not found")

	// ErrAlreadyExists возвращается, когда платёж для продления уже создан
	ErrAlreadyExists = errors.New("payment.repository: payment for extension already exists")

	// ErrStatusChanged возвращается, когда статус платежа изменился между чтением и записью
	ErrStatusChanged = errors.New("payment.repository: payment status changed concurrently")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("payment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("payment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("payment.repository: failed to scan row")
)
