package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/forge-os/pulse/config"
	"github.com/forge-os/pulse/internal/database"
	"github.com/forge-os/pulse/internal/domain"
	httpHandler "github.com/forge-os/pulse/internal/http"
	"github.com/forge-os/pulse/internal/http/middleware"
	"github.com/forge-os/pulse/internal/repository"
	"github.com/forge-os/pulse/internal/service"
	"github.com/forge-os/pulse/pkg/gsheets"
	"github.com/forge-os/pulse/pkg/logger"
)

// App encapsulates the application dependencies and configuration
type App struct {
	config *config.Config
	logger logger.Logger
	db     *sql.DB

	// Repositories
	userRepo     domain.UserRepository
	accountRepo  domain.AccountRepository
	workflowRepo domain.WorkflowRepository
	actionRepo   domain.ActionRepository
	touchRepo    domain.TouchRepository
	sourceRepo   domain.IngestionSourceRepository

	// Services
	ingestionService       *service.IngestionService
	ingestionSourceService *service.IngestionSourceService

	mux    *http.ServeMux
	server *http.Server
}

// AppOption configures the App
type AppOption func(*App)

// WithLogger sets a custom logger
func WithLogger(log logger.Logger) AppOption {
	return func(a *App) {
		a.logger = log
	}
}

// NewApp creates a new application instance
func NewApp(cfg *config.Config, opts ...AppOption) *App {
	app := &App{
		config: cfg,
		mux:    http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(app)
	}
	if app.logger == nil {
		app.logger = logger.NewLogger(cfg.LogLevel)
	}
	return app
}

// Initialize sets up all application components in dependency order.
func (a *App) Initialize() error {
	if err := a.InitDB(); err != nil {
		return err
	}
	a.InitRepositories()
	if err := a.InitServices(); err != nil {
		return err
	}
	a.InitHandlers()
	return nil
}

// InitDB connects to the system database and ensures the schema exists.
func (a *App) InitDB() error {
	db, err := database.Connect(&a.config.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	a.db = db

	if err := database.InitializeDatabase(db, a.config.Ingest.AdminEmails); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	return nil
}

// InitRepositories wires the PostgreSQL repositories.
func (a *App) InitRepositories() {
	a.userRepo = repository.NewUserRepository(a.db)
	a.accountRepo = repository.NewAccountRepository(a.db)
	a.workflowRepo = repository.NewWorkflowRepository(a.db)
	a.actionRepo = repository.NewActionRepository(a.db)
	a.touchRepo = repository.NewTouchRepository(a.db)
	a.sourceRepo = repository.NewIngestionSourceRepository(a.db)
}

// InitServices wires the services, picking the sheet source: the real
// Google Sheets client when credentials and sources are configured, the
// synthetic demo source otherwise.
func (a *App) InitServices() error {
	var sheetSource domain.SheetSource
	if a.config.UseMockSource() {
		a.logger.Info("Using demo sheet source")
		sheetSource = service.NewDemoSheetSource()
	} else {
		client, err := gsheets.New(context.Background(), gsheets.Config{
			ServiceAccountEmail: a.config.Google.ServiceAccountEmail,
			PrivateKey:          a.config.Google.PrivateKey,
			SheetIDs:            a.config.Google.SheetIDs,
			DriveFolderID:       a.config.Google.DriveFolderID,
		})
		if err != nil {
			return fmt.Errorf("failed to create sheets client: %w", err)
		}
		sheetSource = client
	}

	a.ingestionService = service.NewIngestionService(
		a.userRepo,
		a.accountRepo,
		a.workflowRepo,
		a.actionRepo,
		a.touchRepo,
		a.sourceRepo,
		sheetSource,
		a.config.Ingest.AdminEmails,
		a.config.Ingest.SourceTimeout,
		a.logger,
	)
	a.ingestionSourceService = service.NewIngestionSourceService(a.sourceRepo, a.logger)
	return nil
}

// InitHandlers registers the HTTP routes.
func (a *App) InitHandlers() {
	authMiddleware := middleware.NewAuthMiddleware(a.config.Security.APISecretKey)

	ingestHandler := httpHandler.NewIngestHandler(a.ingestionService, a.config.Security.ETLToken, a.logger)
	ingestHandler.RegisterRoutes(a.mux)

	sourceHandler := httpHandler.NewIngestionSourceHandler(a.ingestionSourceService, authMiddleware, a.logger)
	sourceHandler.RegisterRoutes(a.mux)

	accountHandler := httpHandler.NewAccountHandler(a.accountRepo, authMiddleware, a.logger)
	accountHandler.RegisterRoutes(a.mux)

	a.mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
}

// Start runs the HTTP server until it is shut down.
func (a *App) Start() error {
	addr := fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port)
	a.server = &http.Server{
		Addr:         addr,
		Handler:      a.mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // ingestion runs are slow
	}

	a.logger.WithField("addr", addr).Info("HTTP server listening")
	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server and closes the database.
func (a *App) Shutdown(ctx context.Context) error {
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}
	return nil
}

// GetMux exposes the route mux, mainly for tests.
func (a *App) GetMux() *http.ServeMux {
	return a.mux
}

// GetLogger returns the app logger.
func (a *App) GetLogger() logger.Logger {
	return a.logger
}
