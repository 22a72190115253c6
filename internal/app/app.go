package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ShaikMuktharBasha/noteshare-backend/internal/auth/password"
	"github.com/ShaikMuktharBasha/noteshare-backend/internal/auth/token"
	"github.com/ShaikMuktharBasha/noteshare-backend/internal/config"
	"github.com/ShaikMuktharBasha/noteshare-backend/internal/domain"
	redisx "github.com/ShaikMuktharBasha/noteshare-backend/internal/infra/cache/redis"
	"github.com/ShaikMuktharBasha/noteshare-backend/internal/infra/database/postgres"
	s3storage "github.com/ShaikMuktharBasha/noteshare-backend/internal/infra/storage/s3"
	"github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web"
	"github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/v1/health"
)

type App struct {
	config  *config.Config
	server  *web.Server
	log     *log.Logger
	storage domain.FileStorage
	cache   domain.Cache
	repo    *postgres.PGRepo
}

func Build(ctx context.Context) (*App, error) {
	base := log.New(os.Stdout, "[app] ", log.LstdFlags)

	serverLog := log.New(base.Writer(), base.Prefix()+"[server] ", base.Flags())
	pgLog := log.New(base.Writer(), base.Prefix()+"[postgres] ", base.Flags())
	s3Log := log.New(base.Writer(), base.Prefix()+"[s3] ", base.Flags())
	redisLog := log.New(base.Writer(), base.Prefix()+"[redis] ", base.Flags())

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed load config: %w", err)
	}
	base.Printf("\n  configuration: %s-------------------", cfg)
	if !cfg.IsProduction() && cfg.AuthJWTSecret == "changeme" {
		base.Println("WARNING: using default JWT secret, set AUTH_JWT_SECRET")
	}

	base.Println("init PostgreSQL")
	pgRepo, err := postgres.NewPGRepo(ctx, pgLog, cfg.GetDSN(), cfg.DBScheme)
	if err != nil {
		return nil, fmt.Errorf("failed init postgres: %w", err)
	}
	base.Println("PostgreSQL is initialized")

	base.Println("init S3 storage")
	s3cfg := s3storage.Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		Bucket:    cfg.S3Bucket,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		UseSSL:    cfg.S3UseSSL,
		PathStyle: cfg.S3PathStyle,
		PublicURL: cfg.S3PublicURL,
	}
	s3, err := s3storage.New(ctx, s3cfg, s3Log)
	if err != nil {
		return nil, fmt.Errorf("failed init s3: %w", err)
	}

	base.Println("init Redis")
	rc := redisx.New(redisx.Config{
		Addr:     cfg.RedisAddr,
		DB:       cfg.RedisDB,
		Password: cfg.RedisPassword,
	}, redisLog)
	if err := rc.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed init redis: %w", err)
	}
	base.Println("Redis is initialized")

	// Auth primitives
	hasher := password.NewDefault()
	tm := token.New(cfg.AuthJWTSecret, cfg.AuthIssuer, cfg.AuthTokenTTL)

	base.Println("init Server")
	rep := web.Repos{Users: pgRepo, Notes: pgRepo, PersonalDocs: pgRepo}
	auth := web.AuthDeps{Hasher: hasher, Tokens: tm}
	pingers := map[string]health.Pinger{"postgres": pgRepo, "redis": rc}
	server := web.New(serverLog, cfg, rep, auth, s3, rc, pingers)
	base.Println("Server is initialized")

	base.Println("build ended")
	return &App{
		config:  cfg,
		server:  server,
		log:     base,
		storage: s3,
		repo:    pgRepo,
		cache:   rc}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.log.Println("start application...")
	go a.server.Run()
	<-ctx.Done()
	a.log.Println("stop application...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.server.Close(stopCtx)
	a.repo.Close()
	a.cache.Close()

	return nil
}
