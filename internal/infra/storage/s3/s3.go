package s3

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/ShaikMuktharBasha/noteshare-backend/internal/domain"
)

type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	PathStyle bool
	// Базовый URL для публичных ссылок; пусто — собираем из endpoint/bucket
	PublicURL string
}

type Storage struct {
	cl     *minio.Client
	logger *log.Logger
	bucket string
	public string
}

func New(ctx context.Context, cfg Config, logger *log.Logger) (*Storage, error) {
	opts := &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	}
	if cfg.PathStyle {
		opts.BucketLookup = minio.BucketLookupPath
	}
	cl, err := minio.New(cfg.Endpoint, opts)
	if err != nil {
		return nil, err
	}

	public := strings.TrimSuffix(cfg.PublicURL, "/")
	if public == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		public = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}

	return &Storage{cl: cl, logger: logger, bucket: cfg.Bucket, public: public}, nil
}

var _ domain.FileStorage = (*Storage)(nil)

// Put загружает поток под ключом "<folder>/<uuid>_<имя>" и возвращает
// публичный URL плюс ключ для последующего удаления.
func (s *Storage) Put(ctx context.Context, r io.Reader, folder, filename, contentType string) (domain.FileRef, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := path.Join(folder, uuid.NewString()+"_"+sanitize(filename))

	info, err := s.cl.PutObject(ctx, s.bucket, key, r, -1, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		s.logger.Printf("Put %q failed: %v", key, err)
		return domain.FileRef{}, err
	}
	s.logger.Printf("Put %q ok (%d bytes)", key, info.Size)

	return domain.FileRef{
		URL: s.public + "/" + key,
		Key: key,
	}, nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	err := s.cl.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		s.logger.Printf("Delete %q failed: %v", key, err)
		return err
	}
	s.logger.Printf("Delete %q ok", key)
	return nil
}

func sanitize(name string) string {
	u := url.PathEscape(name)
	return strings.ReplaceAll(u, "%2F", "_")
}
