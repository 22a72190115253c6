package mw

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/ShaikMuktharBasha/noteshare-backend/internal/domain"
)

type AuthDeps struct {
	Tokens domain.TokenManager
	Users  domain.UsersRepo
}

// resolveUser проходит всю цепочку: bearer → подпись/срок → аккаунт в хранилище.
// Любой сбой возвращает (User{}, false); причину различают только логи.
func resolveUser(deps AuthDeps, r *http.Request) (domain.User, bool) {
	raw := extractBearer(r.Header.Get("Authorization"))
	if raw == "" {
		return domain.User{}, false
	}
	claims, err := deps.Tokens.Parse(r.Context(), domain.Token(raw))
	if err != nil {
		return domain.User{}, false
	}
	u, err := deps.Users.UserByID(r.Context(), claims.UserID)
	if err != nil {
		// токен валиден, но аккаунта уже нет
		return domain.User{}, false
	}
	u.PassHash = "" // хэш за пределы гейта не выносим
	return u, true
}

// OptionalAuth никогда не роняет запрос: без валидной личности идём анонимно
func OptionalAuth(deps AuthDeps, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := resolveUser(deps, r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(domain.WithUser(r.Context(), u)))
	})
}

func RequireAuth(deps AuthDeps, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := resolveUser(deps, r)
		if !ok {
			writeAuthFail(w, http.StatusUnauthorized, domain.ErrCodeUnauth, "unauthorized")
			return
		}
		next.ServeHTTP(w, r.WithContext(domain.WithUser(r.Context(), u)))
	})
}

// RequireAdmin компонуется ПОСЛЕ RequireAuth: личность уже в контексте
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := domain.UserFromCtx(r.Context())
		if !ok {
			writeAuthFail(w, http.StatusUnauthorized, domain.ErrCodeUnauth, "unauthorized")
			return
		}
		if !u.IsAdmin() {
			writeAuthFail(w, http.StatusForbidden, domain.ErrCodeForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func UserFromCtx(ctx context.Context) (domain.User, bool) {
	return domain.UserFromCtx(ctx)
}

func writeAuthFail(w http.ResponseWriter, status, code int, text string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"error":{"code":%d,"text":%q}}`, code, text)
}

func extractBearer(h string) string {
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
