package auth

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ShaikMuktharBasha/noteshare-backend/internal/domain"
)

// ---- fakes ----

// Стейтфул-хранилище аккаунтов в памяти: проверяет уникальность email
// и срок reset-токена как настоящее.
type fakeUsers struct {
	byID map[domain.UserID]domain.User
}

func newFakeUsers() *fakeUsers { return &fakeUsers{byID: map[domain.UserID]domain.User{}} }

func (f *fakeUsers) Close()                         {}
func (f *fakeUsers) Ping(ctx context.Context) error { return nil }

func (f *fakeUsers) CreateUser(ctx context.Context, name, email, passHash string) (domain.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return domain.User{}, domain.ErrConflict
		}
	}
	u := domain.User{
		ID: uuid.New(), Name: name, Email: email, PassHash: passHash,
		Role: domain.RoleUser, CreatedAt: time.Now(),
	}
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsers) UserByEmail(ctx context.Context, email string) (domain.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (f *fakeUsers) UserByID(ctx context.Context, id domain.UserID) (domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) CountUsers(ctx context.Context) (int64, error) { return int64(len(f.byID)), nil }

func (f *fakeUsers) SetDocsPassword(ctx context.Context, id domain.UserID, hash string) error {
	u, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.DocsPassHash = hash
	f.byID[id] = u
	return nil
}

func (f *fakeUsers) SetResetToken(ctx context.Context, id domain.UserID, token string, expires time.Time) error {
	u, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.ResetToken = token
	u.ResetExpires = expires
	f.byID[id] = u
	return nil
}

func (f *fakeUsers) UserByResetToken(ctx context.Context, token string, now time.Time) (domain.User, error) {
	for _, u := range f.byID {
		if u.ResetToken == token && u.ResetTokenValid(now) {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (f *fakeUsers) UpdatePassword(ctx context.Context, id domain.UserID, passHash string) error {
	u, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.PassHash = passHash
	u.ResetToken = ""
	u.ResetExpires = time.Time{}
	f.byID[id] = u
	return nil
}

func (f *fakeUsers) ToggleFavorite(ctx context.Context, userID domain.UserID, noteID domain.NoteID) (bool, int, error) {
	return false, 0, nil
}

// Прозрачный hasher, чтобы не тянуть argon2 в юнит-тесты хендлеров
type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) { return "hash:" + plain, nil }
func (plainHasher) Verify(plain, encoded string) (bool, error) {
	return encoded == "hash:"+plain, nil
}

type fakeTokens struct{}

func (fakeTokens) Issue(ctx context.Context, userID domain.UserID) (domain.Token, domain.TokenClaims, error) {
	return domain.Token("tok-" + userID.String()), domain.TokenClaims{UserID: userID}, nil
}
func (fakeTokens) Parse(ctx context.Context, t domain.Token) (domain.TokenClaims, error) {
	return domain.TokenClaims{}, nil
}

func newTestHandler(users *fakeUsers) *Handler {
	return &Handler{
		Log:    log.New(io.Discard, "", 0),
		Users:  users,
		Hasher: plainHasher{},
		Tokens: fakeTokens{},
	}
}

func jsonReq(method, target, body string) *http.Request {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func authedJSONReq(method, target, body string, u domain.User) *http.Request {
	r := jsonReq(method, target, body)
	return r.WithContext(domain.WithUser(r.Context(), u))
}
