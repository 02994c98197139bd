package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"resume-studio/internal/artifacts"
	"resume-studio/internal/assist"
	openai "resume-studio/internal/assist/openai"
	"resume-studio/internal/credits"
	"resume-studio/internal/export"
	"resume-studio/internal/preview"
	"resume-studio/internal/render"
	"resume-studio/internal/services/health"
	"resume-studio/internal/session"
	"resume-studio/internal/shared/config"
	"resume-studio/internal/shared/server"
	"resume-studio/internal/shared/server/middleware"
	"resume-studio/internal/shared/storage/db"
	"resume-studio/internal/shared/storage/kv"
	"resume-studio/internal/shared/storage/object"
	localstore "resume-studio/internal/shared/storage/object/local"
	s3store "resume-studio/internal/shared/storage/object/s3"
)

// App holds shared dependencies and the wired router.
type App struct {
	Config   config.Config
	Router   *gin.Engine
	DB       *sql.DB
	Redis    *redis.Client
	Store    object.ObjectStore
	Registry *render.Registry

	Credits   *credits.Service
	Sessions  *session.Service
	Assist    *assist.Service
	Exports   *export.Service
	Artifacts artifacts.Repo
}

// Build connects backing services and wires handlers onto the router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	rdb, err := buildRedis(ctx, cfg)
	if err != nil {
		return nil, err
	}
	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:   cfg,
		DB:       sqlDB,
		Redis:    rdb,
		Store:    store,
		Registry: render.DefaultRegistry(),
	}
	if err := buildServices(app); err != nil {
		return nil, err
	}

	watermark := preview.Watermark{Text: cfg.WatermarkText}
	app.Router = server.NewRouter(server.RouterDeps{
		Config:         cfg,
		CreditsHandler: credits.NewHandler(app.Credits, cfg.DevCreditGrant),
		SessionHandler: session.NewHandler(app.Sessions),
		PreviewHandler: preview.NewHandler(app.Sessions, app.Registry, watermark),
		AssistHandler:  assist.NewHandler(app.Assist),
		ExportHandler:  export.NewHandler(app.Exports),
		Credits:        app.Credits,
		Health:         buildHealth(app),
		Limiter:        middleware.NewRateLimiter(nil),
	})
	return app, nil
}

// Close releases connections opened by Build.
func (a *App) Close() {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.DB != nil {
		_ = a.DB.Close()
	}
}

func buildHealth(app *App) *health.Service {
	svc := health.NewService()
	if app.DB != nil {
		svc.Add("database", app.DB.PingContext)
	}
	if app.Redis != nil {
		svc.Add("redis", func(ctx context.Context) error {
			return app.Redis.Ping(ctx).Err()
		})
	}
	return svc
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.IsDev() {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory credits and artifacts")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err == nil {
		err = db.RunMigrations(ctx, sqlDB)
		if err != nil {
			sqlDB.Close()
		}
	}
	if err != nil {
		if cfg.IsDev() {
			log.Printf("bootstrap: database unavailable; using in-memory credits and artifacts: %v", err)
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildRedis(ctx context.Context, cfg config.Config) (*redis.Client, error) {
	if strings.TrimSpace(cfg.RedisURL) == "" {
		if cfg.IsDev() {
			log.Printf("bootstrap: REDIS_URL empty; sessions and export locks are process-local")
			return nil, nil
		}
		return nil, fmt.Errorf("REDIS_URL is required")
	}
	client, err := kv.Connect(ctx, cfg.RedisURL)
	if err != nil {
		if cfg.IsDev() {
			log.Printf("bootstrap: redis unavailable; sessions and export locks are process-local: %v", err)
			return nil, nil
		}
		return nil, err
	}
	return client, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, s3store.Options{
			Region:   cfg.AWSRegion,
			Bucket:   cfg.S3Bucket,
			Prefix:   cfg.S3Prefix,
			KMSKeyID: cfg.SSEKMSKeyID,
			Endpoint: cfg.S3Endpoint,
		})
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildCredits(cfg config.Config, sqlDB *sql.DB) *credits.Service {
	switch {
	case cfg.BalanceAPIURL != "":
		return credits.NewRemoteService(credits.NewRemoteStore(credits.RemoteConfig{
			BaseURL:      cfg.BalanceAPIURL,
			ClientID:     cfg.BalanceClientID,
			ClientSecret: cfg.BalanceClientSecret,
			TokenURL:     cfg.BalanceTokenURL,
		}))
	case sqlDB != nil:
		return credits.NewPostgresService(credits.NewPGStore(sqlDB))
	default:
		return credits.NewService()
	}
}

func buildWriter(cfg config.Config) assist.Writer {
	if cfg.LLMProvider != "openai" {
		return nil
	}
	client, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel, cfg.OpenAIBaseURL, 60*time.Second)
	if err != nil {
		log.Printf("bootstrap: assist disabled: %v", err)
		return nil
	}
	return assist.NewPromptWriter(client)
}

func buildServices(app *App) error {
	cfg := app.Config
	app.Credits = buildCredits(cfg, app.DB)

	var (
		sessionStore session.Store
		guard        export.Guard
	)
	if app.Redis != nil {
		sessionStore = session.NewRedisStore(app.Redis, cfg.SessionTTL)
		guard = export.NewRedisGuard(app.Redis, 0)
	} else {
		sessionStore = session.NewMemoryStore(cfg.SessionTTL)
		guard = export.NewMemoryGuard()
	}
	app.Sessions = session.NewService(sessionStore, app.Credits)

	if app.DB != nil {
		app.Artifacts = &artifacts.PGRepo{DB: app.DB}
	} else {
		app.Artifacts = artifacts.NewMemoryRepo()
	}

	app.Assist = assist.NewService(app.Sessions, buildWriter(cfg))

	app.Exports = &export.Service{
		Sessions:   app.Sessions,
		Credits:    app.Credits,
		Registry:   app.Registry,
		Rasterizer: export.WithRetry(export.NewChromeRasterizer(cfg.ChromePath, cfg.RasterTimeout)),
		Guard:      guard,
		Store:      app.Store,
		Artifacts:  app.Artifacts,
		Config: export.Config{
			CreditCost:     cfg.ExportCreditCost,
			FilenamePrefix: cfg.ExportFilenamePrefix,
			PublicBaseURL:  cfg.PublicBaseURL,
			LinkTTL:        cfg.ExportLinkTTL,
			Raster:         export.DefaultRasterOptions(),
		},
		Now: time.Now,
	}
	return nil
}
