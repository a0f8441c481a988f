package camera

import "errors"

var (
	// ErrCameraNotFound возвращается, когда камера не найдена
	ErrCameraNotFound = errors.New("camera.repository: camera not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("camera.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("camera.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("camera.repository: failed to scan row")
)
