package storage

import (
	"context"
	"io"
)

type Storage interface {
	UploadImage(ctx context.Context, authorID string, fileName string, file io.Reader, size int64) (string, string, error)
	DeleteImage(ctx context.Context, objectName string) error
}
