package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"resume-composer/internal/compose"
	"resume-composer/internal/generatedresumes"
	"resume-composer/internal/jobdescriptions"
	"resume-composer/internal/llm"
	"resume-composer/internal/llm/openai"
	"resume-composer/internal/profiles"
	"resume-composer/internal/resumes"
	"resume-composer/internal/services/health"
	"resume-composer/internal/shared/auth"
	"resume-composer/internal/shared/config"
	"resume-composer/internal/shared/server"
	"resume-composer/internal/shared/server/middleware"
	"resume-composer/internal/shared/storage/db"
	"resume-composer/internal/shared/storage/object"
	localstore "resume-composer/internal/shared/storage/object/local"
	s3store "resume-composer/internal/shared/storage/object/s3"
	"resume-composer/internal/shared/telemetry"
	"resume-composer/internal/users"
)

const devJWTSecret = "dev-only-insecure-secret"

// ErrLLMNotConfigured is returned by the placeholder client used when no API
// key is configured. Compose rejects such requests before reaching it.
var ErrLLMNotConfigured = errors.New("llm client not configured")

// App holds shared dependencies and the assembled router.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Tokens *auth.Issuer

	UsersService            *users.Service
	ProfilesService         *profiles.Service
	JobDescriptionsService  *jobdescriptions.Service
	GeneratedResumesService *generatedresumes.Service
	ComposeService          *compose.Service
	ResumesService          *resumes.Service
}

type repos struct {
	users     users.Repo
	profiles  profiles.Repo
	jds       jobdescriptions.Repo
	generated generatedresumes.Repo
	resumes   resumes.Repo
}

// Build prepares dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	tokens, err := buildIssuer(cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	client, err := buildLLM(cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Tokens: tokens,
	}
	buildServices(app, buildRepos(sqlDB), client)

	var pinger health.Pinger
	if sqlDB != nil {
		pinger = sqlDB
	}
	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		Tokens:          tokens,
		Health:          health.NewService(pinger),
		Users:           users.NewHandler(app.UsersService),
		Profiles:        profiles.NewHandler(app.ProfilesService),
		JobDescriptions: jobdescriptions.NewHandler(app.JobDescriptionsService),
		Compose:         compose.NewHandler(app.ComposeService),
		Generated:       generatedresumes.NewHandler(app.GeneratedResumesService),
		Resumes:         resumes.NewHandler(app.ResumesService),
		ComposeLimiter:  middleware.NewRateLimiter(nil),
	})

	return app, nil
}

// Close releases the database pool.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func buildIssuer(cfg config.Config) (*auth.Issuer, error) {
	secret := strings.TrimSpace(cfg.JWTSecret)
	if secret == "" {
		if !cfg.IsDevLike() {
			return nil, fmt.Errorf("JWT_SECRET is required in %s", cfg.Env)
		}
		telemetry.Warn("bootstrap.jwt_secret_missing", map[string]any{"env": cfg.Env})
		secret = devJWTSecret
	}
	return auth.NewIssuer(secret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.IsDevLike() {
			telemetry.Info("bootstrap.memory_repositories", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.memory_repositories", map[string]any{"reason": "database connect failed", "error": err.Error()})
			return nil, nil
		}
		return nil, err
	}

	migrateCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	if err := db.RunMigrations(migrateCtx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.AWSRegion) == "" || strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	case "none":
		return nil, nil
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildLLM(cfg config.Config) (llm.Client, error) {
	if strings.TrimSpace(cfg.AIAPIKey) == "" {
		telemetry.Warn("bootstrap.ai_key_missing", map[string]any{"env": cfg.Env})
		return llm.ClientFunc(func(context.Context, llm.Request) (llm.Completion, error) {
			return llm.Completion{}, ErrLLMNotConfigured
		}), nil
	}
	return openai.NewClient(openai.Config{
		APIKey:  cfg.AIAPIKey,
		BaseURL: cfg.AIBaseURL,
		Timeout: cfg.AITimeout,
	})
}

func buildRepos(sqlDB *sql.DB) repos {
	if sqlDB != nil {
		return repos{
			users:     &users.PGRepo{DB: sqlDB},
			profiles:  &profiles.PGRepo{DB: sqlDB},
			jds:       &jobdescriptions.PGRepo{DB: sqlDB},
			generated: &generatedresumes.PGRepo{DB: sqlDB},
			resumes:   &resumes.PGRepo{DB: sqlDB},
		}
	}
	return repos{
		users:     users.NewMemoryRepo(),
		profiles:  profiles.NewMemoryRepo(),
		jds:       jobdescriptions.NewMemoryRepo(),
		generated: generatedresumes.NewMemoryRepo(),
		resumes:   resumes.NewMemoryRepo(),
	}
}

func buildServices(app *App, r repos, client llm.Client) {
	profileSvc := profiles.NewService(r.profiles)
	generatedSvc := generatedresumes.NewService(r.generated, nil)
	jdSvc := jobdescriptions.NewService(r.jds, app.Store, generatedSvc)
	generatedSvc.Titles = jdSvc
	resumeSvc := resumes.NewService(r.resumes)

	composeSvc := compose.NewService(jdSvc, profileSvc, client, generatedSvc, compose.Config{
		APIKey:       app.Config.AIAPIKey,
		DefaultModel: app.Config.AIDefaultModel,
	})

	// Dependents first so the memory repositories mirror ON DELETE CASCADE.
	userSvc := users.NewService(r.users, app.Tokens, profileSvc, app.Config.BcryptCost,
		generatedSvc,
		jdSvc,
		resumeSvc,
		profileSvc,
	)

	app.UsersService = userSvc
	app.ProfilesService = profileSvc
	app.JobDescriptionsService = jdSvc
	app.GeneratedResumesService = generatedSvc
	app.ComposeService = composeSvc
	app.ResumesService = resumeSvc
}
