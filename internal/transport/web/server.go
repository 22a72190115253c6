package web

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/ShaikMuktharBasha/noteshare-backend/internal/config"
	"github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/mw"
	v1 "github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/v1"
	"github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/v1/admin"
	"github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/v1/auth"
	"github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/v1/health"
	"github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/v1/note"
	"github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/v1/personaldoc"
)

// TTL кэша списков каталога, секунд
const notesListTTL = 60

type Server struct {
	log    *log.Logger
	server *http.Server
	cfg    *config.Config
}

func New(logger *log.Logger, cfg *config.Config, repos Repos, ad AuthDeps, fs FileStorage, cache Cache, pingers map[string]health.Pinger) *Server {
	sub := func(name string) *log.Logger {
		return log.New(logger.Writer(), logger.Prefix()+"["+name+"] ", logger.Flags())
	}

	v1.SetDebug(!cfg.IsProduction())

	h := handlers{
		health: &health.Handler{Log: sub("health"), Deps: pingers},
		auth: &auth.Handler{
			Log:    sub("auth"),
			Users:  repos.Users,
			Hasher: ad.Hasher,
			Tokens: ad.Tokens,
		},
		notes: &note.Handler{
			Log:     sub("notes"),
			Notes:   repos.Notes,
			Users:   repos.Users,
			Storage: fs,
			Cache:   cache,
			ListTTL: notesListTTL,
		},
		docs: &personaldoc.Handler{
			Log:     sub("docs"),
			Docs:    repos.PersonalDocs,
			Storage: fs,
		},
		admin: &admin.Handler{
			Log:   sub("admin"),
			Users: repos.Users,
			Notes: repos.Notes,
			Cache: cache,
		},
	}

	gate := mw.AuthDeps{Tokens: ad.Tokens, Users: repos.Users}

	srv := &http.Server{
		Addr:              cfg.AppPort,
		Handler:           newRouter(h, gate, logger),
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		MaxHeaderBytes:    1 << 20,
		ReadHeaderTimeout: 2 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return &Server{server: srv, cfg: cfg, log: logger}
}

func (ws *Server) Run() {
	ws.log.Printf("started on %s", ws.server.Addr)
	if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		ws.log.Fatalf("error: %v", err)
	}
}

func (ws *Server) Close(ctx context.Context) {
	if err := ws.server.Shutdown(ctx); err != nil {
		ws.log.Printf("forced to shutdown: %v", err)
	}
	ws.log.Println("exited gracefully")
}
