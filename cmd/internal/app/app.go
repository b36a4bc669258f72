// Package app wires the RecipeHub server runtime: config, logging, storage,
// the session subsystem, and the HTTP surface.
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DibuBaj/Backend/cmd/identity"
	"github.com/DibuBaj/Backend/cmd/internal/auth/api"
	"github.com/DibuBaj/Backend/cmd/internal/auth/session"
	"github.com/DibuBaj/Backend/cmd/internal/follows"
	"github.com/DibuBaj/Backend/cmd/internal/images"
	"github.com/DibuBaj/Backend/cmd/internal/likes"
	"github.com/DibuBaj/Backend/cmd/internal/recipes"
	"github.com/DibuBaj/Backend/cmd/security/token"
)

// App is the RecipeHub server runtime.
type App struct {
	cfg Config
	log Logger

	dbPool    *pgxpool.Pool
	dbEnabled bool

	metrics *Metrics
	api     *api.Handler
}

// New constructs a fully wired App. Missing session secrets or a violated
// security policy abort startup.
func New(ctx context.Context, cfg Config, log Logger) (*App, error) {
	if log == nil {
		log = NewLogger(cfg.LogLevel, cfg.LogFormat)
	}

	if err := ValidateSecurityConfig(cfg); err != nil {
		return nil, err
	}

	sessCfg, err := session.LoadConfigFromEnv()
	if err != nil {
		return nil, errors.New("session secrets missing or invalid: set RECIPEHUB_AUTH_ACCESS_SECRET and RECIPEHUB_AUTH_REFRESH_SECRET")
	}

	signer, err := token.NewSigner(token.SignerConfig{
		AccessSecret:  []byte(sessCfg.AccessSecret),
		RefreshSecret: []byte(sessCfg.RefreshSecret),
		AccessTTL:     sessCfg.AccessTTL,
		RefreshTTL:    sessCfg.RefreshTTL,
		Issuer:        sessCfg.Issuer,
	})
	if err != nil {
		return nil, err
	}

	var (
		dbPool       *pgxpool.Pool
		dbEnabled    bool
		accountStore identity.Store
		recipeStore  recipes.Store
		likeStore    likes.Store
		followStore  follows.Store
	)

	if cfg.DatabaseURL == "" {
		log.Info("db.disabled.inmemory_store")
		accountStore = identity.NewMemoryStore()
		recipeStore = recipes.NewMemoryStore()
		likeStore = likes.NewMemoryStore()
		followStore = follows.NewMemoryStore()
	} else {
		dbPool, err = NewDBPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if cfg.MigrateOnStart {
			if err := RunMigrations(ctx, cfg); err != nil {
				dbPool.Close()
				return nil, err
			}
		}
		log.Info("db.enabled.postgres_store")

		if accountStore, err = identity.NewPostgresStore(dbPool); err != nil {
			dbPool.Close()
			return nil, err
		}
		if recipeStore, err = recipes.NewPostgresStore(dbPool, ""); err != nil {
			dbPool.Close()
			return nil, err
		}
		if likeStore, err = likes.NewPostgresStore(dbPool, ""); err != nil {
			dbPool.Close()
			return nil, err
		}
		if followStore, err = follows.NewPostgresStore(dbPool, ""); err != nil {
			dbPool.Close()
			return nil, err
		}
		dbEnabled = true
	}

	var imageStore images.Store
	if cfg.S3.Bucket == "" {
		log.Info("images.inmemory_store")
		imageStore = images.NewMemoryStore()
	} else {
		s3Store, err := images.NewS3Store(ctx, cfg.S3)
		if err != nil {
			if dbPool != nil {
				dbPool.Close()
			}
			return nil, err
		}
		log.Info("images.s3_store", "bucket", cfg.S3.Bucket)
		imageStore = s3Store
	}

	sessions, err := session.NewService(sessCfg, accountStore, signer, log)
	if err != nil {
		if dbPool != nil {
			dbPool.Close()
		}
		return nil, err
	}

	apiHandler, err := api.NewHandler(log, api.LoadConfigFromEnv(), api.Deps{
		Sessions: sessions,
		Accounts: accountStore,
		Recipes:  recipeStore,
		Likes:    likeStore,
		Follows:  followStore,
		Images:   imageStore,
	})
	if err != nil {
		if dbPool != nil {
			dbPool.Close()
		}
		return nil, err
	}

	return &App{
		cfg:       cfg,
		log:       log,
		dbPool:    dbPool,
		dbEnabled: dbEnabled,
		metrics:   NewMetrics(),
		api:       apiHandler,
	}, nil
}

// Handler builds the full middleware-wrapped HTTP handler.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	registerHTTP(mux, a.log, a.cfg, a.dbPool, a.dbEnabled, a.metrics, a.api)
	return WithRequestLogging(a.metrics.Middleware(mux), a.log)
}

// Run starts the HTTP server and blocks until context cancellation or a
// fatal server error.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: nonZeroDuration(a.cfg.ReadHeaderTimeout, 5*time.Second),
		ReadTimeout:       nonZeroDuration(a.cfg.ReadTimeout, 15*time.Second),
		WriteTimeout:      nonZeroDuration(a.cfg.WriteTimeout, 15*time.Second),
		IdleTimeout:       nonZeroDuration(a.cfg.IdleTimeout, 60*time.Second),
		MaxHeaderBytes:    nonZeroInt(a.cfg.MaxHeaderBytes, 1<<20),
	}

	a.log.Info("server.start", "addr", a.cfg.HTTPAddr, "db_enabled", a.dbEnabled)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.log.Info("server.stop", "reason", "context_done")
	case err := <-errCh:
		a.log.Error("server.fail", "err", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error("server.shutdown.fail", "err", err)
		return err
	}

	if a.dbPool != nil {
		a.dbPool.Close()
	}

	a.log.Info("server.stopped")
	return nil
}

func nonZeroDuration(v, def time.Duration) time.Duration {
	if v <= 0 {
		return def
	}
	return v
}

func nonZeroInt(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
