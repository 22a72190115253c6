package web

import "github.com/ShaikMuktharBasha/noteshare-backend/internal/domain"

// Порт кэша; реализация — infra/cache/redis
type Cache = domain.Cache
