package extension

import "errors"

// PendingConstraint частичный уникальный индекс: не больше одного pending продления на аренду
const PendingConstraint = "uq_rental_extensions_one_pending"

var (
	// ErrExtensionNotFound возвращается, когда продление не найдено
	ErrExtensionNotFound = errors.New("extension.repository: extension not found")

	// ErrPendingExists возвращается, когда у аренды уже есть pending продление
	ErrPendingExists = errors.New("extension.repository: rental already has a pending extension")

	// ErrNotPending возвращается, когда продление уже не в статусе pending
	ErrNotPending = errors.New("extension.repository: extension is not pending")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("extension.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("extension.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("extension.repository: failed to scan row")
)
