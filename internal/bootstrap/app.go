package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"leavepilot-backend/internal/audit"
	googleauth "leavepilot-backend/internal/auth"
	"leavepilot-backend/internal/companies"
	"leavepilot-backend/internal/content"
	"leavepilot-backend/internal/employees"
	"leavepilot-backend/internal/ingest"
	"leavepilot-backend/internal/llm"
	"leavepilot-backend/internal/llm/gemini"
	openai "leavepilot-backend/internal/llm/openai"
	"leavepilot-backend/internal/onboarding"
	"leavepilot-backend/internal/shared/config"
	"leavepilot-backend/internal/shared/server"
	"leavepilot-backend/internal/shared/storage/db"
	"leavepilot-backend/internal/shared/storage/object"
	localstore "leavepilot-backend/internal/shared/storage/object/local"
	s3store "leavepilot-backend/internal/shared/storage/object/s3"
	"leavepilot-backend/internal/users"
)

// App holds shared dependencies built from config.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	Extractor llm.Extractor
	Validator llm.Validator

	IngestRepo     ingest.Repo
	CompaniesRepo  companies.Repo
	EmployeesRepo  employees.Repo
	ContentRepo    content.Repo
	OnboardingRepo onboarding.Repo
	AuditRepo      audit.Repo
	AdminsRepo     users.Repo

	IngestService     *ingest.Service
	CompaniesService  *companies.Service
	EmployeesService  *employees.Service
	ContentService    *content.Service
	OnboardingService *onboarding.Service
	AuditService      *audit.Service
	AdminsService     *users.Service

	IngestHandler     *ingest.Handler
	CompaniesHandler  *companies.Handler
	EmployeesHandler  *employees.Handler
	ContentHandler    *content.Handler
	OnboardingHandler *onboarding.Handler
	AuditHandler      *audit.Handler
	UsersHandler      *users.Handler
	GoogleAuth        *googleauth.GoogleService
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            app.Config,
		IngestHandler:     app.IngestHandler,
		CompaniesHandler:  app.CompaniesHandler,
		EmployeesHandler:  app.EmployeesHandler,
		ContentHandler:    app.ContentHandler,
		OnboardingHandler: app.OnboardingHandler,
		AuditHandler:      app.AuditHandler,
		UsersHandler:      app.UsersHandler,
		GoogleAuth:        app.GoogleAuth,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
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

func buildServices(app *App) error {
	if app.DB != nil {
		app.IngestRepo = &ingest.PGRepo{DB: app.DB}
		app.CompaniesRepo = &companies.PGRepo{DB: app.DB}
		app.EmployeesRepo = &employees.PGRepo{DB: app.DB}
		app.ContentRepo = &content.PGRepo{DB: app.DB}
		app.OnboardingRepo = &onboarding.PGRepo{DB: app.DB}
		app.AuditRepo = &audit.PGRepo{DB: app.DB}
		app.AdminsRepo = &users.PGRepo{DB: app.DB}
	} else {
		app.IngestRepo = ingest.NewMemoryRepo()
		app.CompaniesRepo = companies.NewMemoryRepo()
		app.EmployeesRepo = employees.NewMemoryRepo()
		app.ContentRepo = content.NewMemoryRepo()
		app.OnboardingRepo = onboarding.NewMemoryRepo()
		app.AuditRepo = audit.NewMemoryRepo()
		app.AdminsRepo = users.NewMemoryRepo()
	}

	extractor, validator, err := buildModelClients(app.Config)
	if err != nil {
		return err
	}
	app.Extractor = extractor
	app.Validator = validator

	app.AuditService = audit.NewService(app.AuditRepo)
	app.IngestService = ingest.NewService(app.Extractor, app.Validator, app.Store, app.IngestRepo)
	app.CompaniesService = companies.NewService(app.CompaniesRepo)
	app.EmployeesService = employees.NewService(app.EmployeesRepo, app.IngestService)
	app.ContentService = content.NewService(app.ContentRepo)
	app.OnboardingService = onboarding.NewService(app.OnboardingRepo, app.CompaniesService, app.EmployeesService)
	app.AdminsService = users.NewService(app.AdminsRepo)

	app.IngestHandler = ingest.NewHandler(app.IngestService, app.AuditService)
	app.CompaniesHandler = companies.NewHandler(app.CompaniesService, app.AuditService)
	app.EmployeesHandler = employees.NewHandler(app.EmployeesService, app.AuditService)
	app.ContentHandler = content.NewHandler(app.ContentService, app.AuditService)
	app.OnboardingHandler = onboarding.NewHandler(app.OnboardingService)
	app.AuditHandler = audit.NewHandler(app.AuditService)
	app.UsersHandler = users.NewHandler(app.AdminsService)
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		app.AdminsService,
	)

	return nil
}

func buildModelClients(cfg config.Config) (llm.Extractor, llm.Validator, error) {
	extractor := llm.Extractor(llm.PlaceholderExtractor{})
	if cfg.ExtractorProvider == "openai" && os.Getenv("OPENAI_API_KEY") != "" {
		client, err := openai.NewClient(os.Getenv("OPENAI_API_KEY"), cfg.ExtractorModel)
		if err != nil {
			return nil, nil, err
		}
		extractor = client
	}

	validator := llm.Validator(llm.PlaceholderValidator{})
	if cfg.ValidatorProvider == "gemini" && os.Getenv("GEMINI_API_KEY") != "" {
		client, err := gemini.NewClient(os.Getenv("GEMINI_API_KEY"), cfg.ValidatorModel)
		if err != nil {
			return nil, nil, err
		}
		validator = client
	}

	return extractor, validator, nil
}
