package domain

import (
	"context"
	"strconv"
)

// Ключи кеша — единое место, чтобы не расползались по коду.
// Списки версионируются: любой пишущий запрос к каталогу инкрементит
// версию, старые ключи отмирают по TTL.
func CacheKeyNotesVersion() string { return "notes:ver" }
func CacheKeyNotesList(ver int64, pageKey string) string {
	return "notes:list:" + strconv.FormatInt(ver, 10) + ":" + pageKey
}

// Простой k/v интерфейс. Реализация — Redis.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttlSeconds int) error
	Del(ctx context.Context, keys ...string) error
	Incr(ctx context.Context, key string) (int64, error)
	Ping(context.Context) error
	Close()
}
