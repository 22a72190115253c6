package web

import (
	"log"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/ShaikMuktharBasha/noteshare-backend/internal/docs"
	"github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/mw"
	"github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/v1/admin"
	"github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/v1/auth"
	"github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/v1/health"
	"github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/v1/note"
	"github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/v1/personaldoc"
)

type handlers struct {
	health *health.Handler
	auth   *auth.Handler
	notes  *note.Handler
	docs   *personaldoc.Handler
	admin  *admin.Handler
}

func newRouter(h handlers, ad mw.AuthDeps, logger *log.Logger) http.Handler {
	mux := http.NewServeMux()

	required := func(hf http.HandlerFunc) http.Handler { return mw.RequireAuth(ad, hf) }
	optional := func(hf http.HandlerFunc) http.Handler { return mw.OptionalAuth(ad, hf) }
	adminOnly := func(hf http.HandlerFunc) http.Handler { return mw.RequireAuth(ad, mw.RequireAdmin(hf)) }

	// health
	mux.HandleFunc("GET /health", h.health.Liveness)
	mux.HandleFunc("GET /health/ready", h.health.Readiness)

	// auth
	mux.HandleFunc("POST /api/auth/register", h.auth.Register)
	mux.HandleFunc("POST /api/auth/login", h.auth.Login)
	mux.Handle("GET /api/auth/profile", required(h.auth.Profile))
	mux.Handle("POST /api/auth/docs-password/verify", required(h.auth.VerifyDocsPassword))
	mux.Handle("POST /api/auth/docs-password/set", required(h.auth.SetDocsPassword))
	mux.Handle("POST /api/auth/docs-password/reset", required(h.auth.ResetDocsPassword))
	mux.HandleFunc("POST /api/auth/forgot-password", h.auth.ForgotPassword)
	mux.HandleFunc("POST /api/auth/reset-password/{token}", h.auth.ResetPassword)

	// каталог заметок: чтение публичное, mine/favorites различает токен
	mux.Handle("GET /api/notes", optional(h.notes.List))
	mux.HandleFunc("GET /api/notes/{id}", h.notes.Get)
	mux.Handle("POST /api/notes/upload", required(limitBody(6<<20, h.notes.Upload))) // 5MB файл + multipart-оверхед
	mux.Handle("PUT /api/notes/{id}", required(h.notes.Update))
	mux.Handle("DELETE /api/notes/{id}", required(h.notes.Delete))
	mux.Handle("POST /api/notes/like/{id}", required(h.notes.Like))
	mux.Handle("POST /api/notes/favorite/{id}", required(h.notes.Favorite))
	mux.Handle("POST /api/notes/comment/{id}", required(h.notes.Comment))

	// личные документы: весь раздел только по токену
	mux.Handle("GET /api/personal-docs", required(h.docs.List))
	mux.Handle("POST /api/personal-docs", required(limitBody(6<<20, h.docs.Upload)))
	mux.Handle("GET /api/personal-docs/{id}", required(h.docs.Get))
	mux.Handle("PUT /api/personal-docs/{id}", required(h.docs.Update))
	mux.Handle("DELETE /api/personal-docs/{id}", required(h.docs.Delete))

	// админка
	mux.Handle("GET /api/admin/stats", adminOnly(h.admin.Stats))
	mux.Handle("GET /api/admin/notes", adminOnly(h.admin.ListNotes))
	mux.Handle("DELETE /api/admin/notes/{id}", adminOnly(h.admin.RemoveNote))

	// swagger
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// 🔗 middleware
	return mw.WithRequestID(mw.Logging(logger)(mux))
}

func limitBody(n int64, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, n)
		h(w, r)
	}
}
