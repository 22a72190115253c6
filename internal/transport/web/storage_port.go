package web

import "github.com/ShaikMuktharBasha/noteshare-backend/internal/domain"

// Порт объектного хранилища; реализация — infra/storage/s3
type FileStorage = domain.FileStorage
