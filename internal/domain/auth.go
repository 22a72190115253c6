package domain

import (
	"context"
	"time"
)

type Token string

type TokenClaims struct {
	UserID    UserID
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Хеширование паролей (основного и docs-пароля)
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, encodedHash string) (bool, error)
}

// Управление токенами. Сервис stateless: за хранилище не ходит,
// всё состояние — подпись и срок внутри токена.
type TokenManager interface {
	Issue(ctx context.Context, userID UserID) (Token, TokenClaims, error)
	Parse(ctx context.Context, t Token) (TokenClaims, error)
}
