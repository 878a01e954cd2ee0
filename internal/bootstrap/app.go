package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-matcher/internal/analyses"
	googleauth "resume-matcher/internal/auth"
	"resume-matcher/internal/llm"
	"resume-matcher/internal/llm/gemini"
	"resume-matcher/internal/services/health"
	"resume-matcher/internal/shared/auth"
	"resume-matcher/internal/shared/config"
	"resume-matcher/internal/shared/server"
	"resume-matcher/internal/shared/storage/db"
	"resume-matcher/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	DB              *sql.DB
	Model           llm.Model
	Signer          *auth.Signer
	AnalysesRepo    analyses.Repo
	UsersRepo       users.Repo
	AnalysesService *analyses.Service
	UsersService    *users.Service
	AnalysisHandler *analyses.Handler
	UsersHandler    *users.Handler
	GoogleAuth      *googleauth.GoogleService
	Health          *health.Service
}

// Build opens the configured store, runs migrations, builds the model client and wires routes.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	signer, err := auth.NewSigner(cfg.JWTSecret, cfg.Env, auth.DefaultTTL)
	if err != nil {
		closeDB(sqlDB)
		return nil, err
	}

	model, err := buildModel(ctx, cfg)
	if err != nil {
		closeDB(sqlDB)
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Model:  model,
		Signer: signer,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		Verifier:        app.Signer,
		Health:          app.Health,
		AnalysisHandler: app.AnalysisHandler,
		UserHandler:     app.UsersHandler,
		GoogleAuth:      app.GoogleAuth,
	})

	return app, nil
}

// Close releases the database pool, if any.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			if isDevLike(cfg.Env) {
				log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
				return nil, nil
			}
			return nil, err
		}
		if err := db.RunMigrations(ctx, sqlDB, db.DialectPostgres); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		return sqlDB, nil
	case config.StoreSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite dir: %w", err)
			}
		}
		sqlDB, err := db.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := db.RunMigrations(ctx, sqlDB, db.DialectSQLite); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		return sqlDB, nil
	default:
		log.Printf("bootstrap: using in-memory repositories")
		return nil, nil
	}
}

func buildModel(ctx context.Context, cfg config.Config) (llm.Model, error) {
	if cfg.GeminiAPIKey == "" {
		if !isDevLike(cfg.Env) {
			return nil, errors.New("GEMINI_API_KEY is required")
		}
		log.Printf("bootstrap: GEMINI_API_KEY empty; analyses will fail until it is set")
		return llm.UnconfiguredModel{}, nil
	}
	model, err := gemini.New(ctx, gemini.Options{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		Timeout: cfg.GeminiTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	log.Printf("bootstrap: gemini model %s", model.Name())
	return model, nil
}

func buildServices(app *App) {
	storeName := config.StoreMemory
	switch {
	case app.DB != nil && app.Config.StoreDriver == config.StoreSQLite:
		app.AnalysesRepo = &analyses.SQLiteRepo{DB: app.DB}
		app.UsersRepo = &users.SQLiteRepo{DB: app.DB}
		storeName = config.StoreSQLite
	case app.DB != nil:
		app.AnalysesRepo = &analyses.PGRepo{DB: app.DB}
		app.UsersRepo = &users.PGRepo{DB: app.DB}
		storeName = config.StorePostgres
	default:
		app.AnalysesRepo = analyses.NewMemoryRepo()
		app.UsersRepo = users.NewMemoryRepo()
	}

	app.AnalysesService = analyses.NewService(app.AnalysesRepo, llm.NewInvoker(app.Model))
	app.UsersService = users.NewService(app.UsersRepo)
	app.AnalysisHandler = analyses.NewHandler(app.AnalysesService)
	app.UsersHandler = users.NewHandler(app.UsersService)
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		app.Signer,
		app.UsersService,
	)

	var pinger health.Pinger
	if app.DB != nil {
		pinger = app.DB
	}
	app.Health = health.NewService(pinger, storeName, modelName(app.Model))
}

func modelName(model llm.Model) string {
	if named, ok := model.(interface{ Name() string }); ok {
		return named.Name()
	}
	return ""
}

func closeDB(sqlDB *sql.DB) {
	if sqlDB != nil {
		_ = sqlDB.Close()
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
