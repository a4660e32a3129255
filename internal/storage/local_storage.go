package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStorage пишет загрузки на диск под UploadDir; в продакшене это
// примонтированный персистентный диск, файлы отдаются через /uploads/
type LocalStorage struct {
	uploadDir string
	baseURL   string
}

func NewLocalStorage(uploadDir string) (*LocalStorage, error) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return nil, fmt.Errorf("не удалось создать каталог загрузок %s: %w", uploadDir, err)
	}

	return &LocalStorage{
		uploadDir: uploadDir,
		baseURL:   "/uploads",
	}, nil
}

func (s *LocalStorage) UploadImage(ctx context.Context, authorID string, fileName string, file io.Reader, size int64) (string, string, error) {
	fileExt := strings.ToLower(filepath.Ext(fileName))
	if fileExt == "" {
		fileExt = ".jpg"
	}

	// имя файла генерируем сами, пользовательское не доверяем
	objectName := fmt.Sprintf("%s_%s%s", authorID, uuid.New().String(), fileExt)
	destPath := filepath.Join(s.uploadDir, objectName)

	dest, err := os.Create(destPath)
	if err != nil {
		return "", "", fmt.Errorf("ошибка создания файла: %w", err)
	}
	defer dest.Close()

	if _, err := io.Copy(dest, file); err != nil {
		os.Remove(destPath)
		return "", "", fmt.Errorf("ошибка записи файла: %w", err)
	}

	imageURL := s.baseURL + "/" + objectName

	return objectName, imageURL, nil
}

func (s *LocalStorage) DeleteImage(ctx context.Context, objectName string) error {
	// objectName приходит без пути, но на всякий случай отрезаем каталоги
	destPath := filepath.Join(s.uploadDir, filepath.Base(objectName))

	if err := os.Remove(destPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("ошибка удаления файла: %w", err)
	}

	return nil
}

// Dir возвращает каталог загрузок для раздачи статики
func (s *LocalStorage) Dir() string {
	return s.uploadDir
}
