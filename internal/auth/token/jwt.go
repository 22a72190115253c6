package token

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ShaikMuktharBasha/noteshare-backend/internal/domain"
)

// Срок жизни токена — 7 дней
const DefaultTTL = 7 * 24 * time.Hour

type Manager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func New(secret string, issuer string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

// Ensure: Manager implements domain.TokenManager
var _ domain.TokenManager = (*Manager)(nil)

// Issue выпускает JWT с идентификатором аккаунта в subject
func (m *Manager) Issue(_ context.Context, userID domain.UserID) (domain.Token, domain.TokenClaims, error) {
	now := time.Now().UTC()

	cl := jwt.RegisteredClaims{
		Issuer:    m.issuer,
		Subject:   userID.String(),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, cl)
	tokenStr, err := t.SignedString(m.secret)
	if err != nil {
		return "", domain.TokenClaims{}, err
	}

	return domain.Token(tokenStr), domain.TokenClaims{
		UserID:    userID,
		IssuedAt:  cl.IssuedAt.Time,
		ExpiresAt: cl.ExpiresAt.Time,
	}, nil
}

// Parse валидирует подпись/сроки и возвращает доменные клеймы.
// За Credential Store не ходит: существование аккаунта проверяет вызывающий.
func (m *Manager) Parse(_ context.Context, raw domain.Token) (domain.TokenClaims, error) {
	var out jwt.RegisteredClaims
	tkn, err := jwt.ParseWithClaims(string(raw), &out, func(token *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired())
	if err != nil {
		return domain.TokenClaims{}, err
	}
	if !tkn.Valid {
		return domain.TokenClaims{}, jwt.ErrTokenInvalidClaims
	}

	uid, err := uuid.Parse(out.Subject)
	if err != nil {
		return domain.TokenClaims{}, jwt.ErrTokenInvalidSubject
	}

	// exp гарантирован опцией выше, iat чужой издатель мог и не положить
	cl := domain.TokenClaims{UserID: uid, ExpiresAt: out.ExpiresAt.Time}
	if out.IssuedAt != nil {
		cl.IssuedAt = out.IssuedAt.Time
	}
	return cl, nil
}
