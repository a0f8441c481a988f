package filestorage

// File загружаемый файл
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

// StoredFile результат загрузки: ключ в бакете и публичная ссылка
type StoredFile struct {
	Path string
	URL  string
}
