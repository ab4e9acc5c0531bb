package storage

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/h2non/filetype"
)

// Разрешённые форматы логотипов.
var allowedLogoTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

// LogoStorage — файловое хранилище логотипов компаний. Тип файла
// определяется по содержимому, а не по расширению или Content-Type.
type LogoStorage struct {
	rootPath       string
	maxUploadBytes int64
}

// NewLogoStorage создаёт хранилище логотипов.
func NewLogoStorage(rootPath string, maxUploadMB int64) (*LogoStorage, error) {
	if err := os.MkdirAll(rootPath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: не удалось создать каталог %s: %w", rootPath, err)
	}

	return &LogoStorage{
		rootPath:       rootPath,
		maxUploadBytes: maxUploadMB * 1024 * 1024,
	}, nil
}

// SaveLogo проверяет и сохраняет логотип, возвращает относительный путь.
func (s *LogoStorage) SaveLogo(companyID uuid.UUID, r io.Reader, size int64) (string, error) {
	if size > s.maxUploadBytes {
		return "", fmt.Errorf("storage: размер файла превышает лимит %d байт", s.maxUploadBytes)
	}

	// filetype определяет формат по первым 261 байтам
	head := make([]byte, 261)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("storage: ошибка чтения файла: %w", err)
	}
	head = head[:n]

	kind, err := filetype.Match(head)
	if err != nil {
		return "", fmt.Errorf("storage: не удалось определить тип файла: %w", err)
	}
	ext, ok := allowedLogoTypes[kind.MIME.Value]
	if !ok {
		return "", fmt.Errorf("storage: допустимы только изображения PNG, JPEG и WebP")
	}

	dir := filepath.Join(s.rootPath, companyID.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("storage: не удалось создать каталог компании: %w", err)
	}

	fileName := fmt.Sprintf("logo_%d%s", time.Now().UnixNano(), ext)
	targetPath := filepath.Join(dir, fileName)
	tempPath := targetPath + ".tmp"

	f, err := os.Create(tempPath)
	if err != nil {
		return "", fmt.Errorf("storage: не удалось создать файл: %w", err)
	}
	defer f.Close()

	limited := io.LimitedReader{R: io.MultiReader(bytes.NewReader(head), r), N: s.maxUploadBytes + 1}
	written, err := io.Copy(f, &limited)
	if err != nil {
		_ = os.Remove(tempPath)
		return "", fmt.Errorf("storage: ошибка записи файла: %w", err)
	}
	if written > s.maxUploadBytes {
		_ = os.Remove(tempPath)
		return "", fmt.Errorf("storage: размер файла превышает лимит %d байт", s.maxUploadBytes)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("storage: ошибка закрытия файла: %w", err)
	}
	if err := os.Rename(tempPath, targetPath); err != nil {
		return "", fmt.Errorf("storage: не удалось переименовать файл: %w", err)
	}

	return filepath.Join(companyID.String(), fileName), nil
}

// DeleteLogo удаляет логотип из хранилища.
func (s *LogoStorage) DeleteLogo(relativePath string) error {
	target := filepath.Join(s.rootPath, relativePath)
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: не удалось удалить файл: %w", err)
	}
	return nil
}
