package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-RentalService/internal/integrations/filestorage"
)

// maxMultipartMemory часть multipart формы, которая держится в памяти
const maxMultipartMemory = 10 << 20

// IsMultipart true для multipart/form-data запросов
func IsMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// ReadFormFile читает файл из multipart формы. Отсутствующий файл не ошибка: nil, nil.
func ReadFormFile(r *http.Request, field string, maxSize int64) (*filestorage.File, error) {
	if r.MultipartForm == nil {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			return nil, fmt.Errorf("parse multipart form: %w", err)
		}
	}

	f, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("read form file %s: %w", field, err)
	}
	defer f.Close()

	// Читаем на байт больше лимита, чтобы отличить «ровно лимит» от превышения
	content, err := io.ReadAll(io.LimitReader(f, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read form file %s: %w", field, err)
	}
	if int64(len(content)) > maxSize {
		return nil, filestorage.ErrFileTooLarge
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(content)
	}

	return &filestorage.File{
		Name:        header.Filename,
		ContentType: contentType,
		Content:     content,
	}, nil
}
