package filestorage

import "errors"

var (
	// ErrEmptyFile возвращается для пустого файла
	ErrEmptyFile = errors.New("filestorage: empty file")

	// ErrFileTooLarge возвращается, если файл превышает лимит
	ErrFileTooLarge = errors.New("filestorage: file too large")

	// ErrUnsupportedType возвращается для неподдерживаемого типа файла
	ErrUnsupportedType = errors.New("filestorage: unsupported file type")

	// ErrUploadFailed возвращается при ошибке загрузки в хранилище
	ErrUploadFailed = errors.New("filestorage: upload failed")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("filestorage: internal error")
)
