package upload

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"eventsMap/internal/config"
	"eventsMap/internal/models/domain"

	"github.com/google/uuid"
)

const (
	msgInvalidImage  = "invalid image"
	msgInvalidFormat = "invalid image format, use JPG, JPEG, PNG or WEBP"
)

// mimeToExtension — разрешённые типы и расширение, под которым файл сохраняется.
var mimeToExtension = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

var allowedExtensions = map[string]struct{}{
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"webp": {},
}

// Store принимает загруженные изображения и кладёт их в публичную директорию.
type Store struct {
	dir          string
	publicPrefix string
	maxBytes     int64
	now          func() time.Time
}

func New(cfg config.UploadConfig) *Store {
	prefix := "/" + strings.Trim(cfg.PublicPrefix, "/")
	return &Store{
		dir:          cfg.Dir,
		publicPrefix: prefix,
		maxBytes:     cfg.MaxImageBytes,
		now:          time.Now,
	}
}

// Dir возвращает директорию, из которой раздаются файлы.
func (s *Store) Dir() string {
	return s.dir
}

// PublicPrefix возвращает URL префикс сохранённых файлов.
func (s *Store) PublicPrefix() string {
	return s.publicPrefix
}

// Validate проверяет размер, заявленный Content-Type и расширение имени файла.
// Заголовок от клиента не считается достоверным, поэтому обе проверки обязательны.
// Возвращает расширение, под которым файл будет сохранён.
func (s *Store) Validate(fh *multipart.FileHeader) (string, error) {
	if fh == nil || fh.Size <= 0 {
		return "", domain.NewValidationError("image", msgInvalidImage)
	}
	if s.maxBytes > 0 && fh.Size > s.maxBytes {
		return "", domain.NewValidationError("image",
			fmt.Sprintf("image is too large, max %d bytes", s.maxBytes))
	}

	mimeExt, ok := mimeToExtension[mediaType(fh.Header.Get("Content-Type"))]
	_, nameOK := allowedExtensions[nameExtension(fh.Filename)]
	if !ok || !nameOK {
		return "", domain.NewValidationError("image", msgInvalidFormat)
	}

	return mimeExt, nil
}

// Save валидирует и сохраняет файл, возвращая публичный путь вида /uploads/<name>.
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	op := "upload.Store.Save()"

	ext, err := s.Validate(fh)
	if err != nil {
		return "", err
	}

	src, err := fh.Open()
	if err != nil {
		return "", &domain.StorageError{Op: op, Err: err}
	}
	defer src.Close()

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", &domain.StorageError{Op: op, Err: err}
	}

	fileName := fmt.Sprintf("%d-%s.%s", s.now().UnixMilli(), uuid.NewString(), ext)
	destination := filepath.Join(s.dir, fileName)

	dst, err := os.OpenFile(destination, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", &domain.StorageError{Op: op, Err: err}
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(destination)
		return "", &domain.StorageError{Op: op, Err: err}
	}
	if err := dst.Close(); err != nil {
		os.Remove(destination)
		return "", &domain.StorageError{Op: op, Err: err}
	}

	return path.Join(s.publicPrefix, fileName), nil
}

// Remove удаляет ранее сохранённый файл по публичному пути.
func (s *Store) Remove(ref string) error {
	op := "upload.Store.Remove()"

	name, ok := strings.CutPrefix(ref, s.publicPrefix+"/")
	if !ok || name == "" || strings.ContainsAny(name, `/\`) || name == ".." {
		return fmt.Errorf("%s: reference outside upload dir: %s", op, ref)
	}

	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return &domain.StorageError{Op: op, Err: err}
	}
	return nil
}

func mediaType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mt
}

func nameExtension(fileName string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(fileName)), ".")
}
