package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/google/uuid"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config параметры S3-совместимого хранилища
type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	PublicURL string // базовый URL для публичных ссылок, по умолчанию endpoint/bucket
	MaxSize   int64  // максимальный размер файла в байтах
}

var allowedContentTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

// Client загружает чеки об оплате в S3
type Client struct {
	s3     s3iface.S3API
	cfg    Config
	newKey func() string
	log    Logger
}

// NewClient создает клиента S3 со статическими учетными данными
func NewClient(cfg Config, log Logger) (*Client, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:           aws.String(cfg.Region),
		Endpoint:         aws.String(cfg.Endpoint),
		S3ForcePathStyle: aws.Bool(true),
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create session: %v", ErrInternal, err)
	}

	return newClient(s3.New(sess), cfg, log), nil
}

func newClient(api s3iface.S3API, cfg Config, log Logger) *Client {
	return &Client{
		s3:     api,
		cfg:    cfg,
		newKey: func() string { return uuid.NewString() },
		log:    log,
	}
}

// Upload сохраняет файл под ключом payments/<rentalID>/<uuid><ext>
func (c *Client) Upload(ctx context.Context, rentalID int64, file File) (*StoredFile, error) {
	if len(file.Content) == 0 {
		return nil, ErrEmptyFile
	}
	if c.cfg.MaxSize > 0 && int64(len(file.Content)) > c.cfg.MaxSize {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrFileTooLarge, len(file.Content), c.cfg.MaxSize)
	}

	contentType := file.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(file.Content)
	}
	contentType = strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))

	defaultExt, ok := allowedContentTypes[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}

	ext := strings.ToLower(filepath.Ext(file.Name))
	if ext == "" {
		ext = defaultExt
	}

	key := fmt.Sprintf("payments/%d/%s%s", rentalID, c.newKey(), ext)

	_, err := c.s3.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(file.Content),
		ContentLength: aws.Int64(int64(len(file.Content))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		c.log.Error("FileStorage: failed to upload %s: %v", key, err)
		return nil, fmt.Errorf("%w: put object %s: %v", ErrUploadFailed, key, err)
	}

	c.log.Info("FileStorage: uploaded %s (%d bytes)", key, len(file.Content))
	return &StoredFile{Path: key, URL: c.publicURL(key)}, nil
}

func (c *Client) publicURL(key string) string {
	base := c.cfg.PublicURL
	if base == "" {
		base = fmt.Sprintf("%s/%s", strings.TrimRight(c.cfg.Endpoint, "/"), c.cfg.Bucket)
	}
	return fmt.Sprintf("%s/%s", strings.TrimRight(base, "/"), key)
}
