package domain

import (
	"context"
	"io"
)

// Хранилище бинарного контента (S3/MinIO). Put возвращает URL для чтения
// и ключ для последующего удаления; ключ встраивается в запись-владельца.
type FileStorage interface {
	Put(ctx context.Context, r io.Reader, folder, filename, contentType string) (FileRef, error)
	Delete(ctx context.Context, key string) error
}
