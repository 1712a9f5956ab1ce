package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
	"todoWeb/internal/config"
	"todoWeb/internal/handlers"
	"todoWeb/internal/logger"
	"todoWeb/internal/middleware"
	"todoWeb/internal/models/account"
	"todoWeb/internal/repository/inmemory"
	"todoWeb/internal/repository/postgres"
	"todoWeb/internal/service"
	"todoWeb/internal/websession"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

type repositories struct {
	accounts service.AccountRepository
	tasks    service.TaskRepository
	sessions service.SessionRepository
}

type App struct {
	config    *config.Config
	server    *http.Server
	router    *chi.Mux
	handler   http.Handler
	repos     repositories
	webStore  websession.Store
	shutdowns []func() // функции для graceful shutdown
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

func (a *App) Init(ctx context.Context) (*App, error) {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return nil, fmt.Errorf("инициализация логгера: %w", err)
	}
	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("Завершение работы логгирования...")
		logger.Sync()
	})

	verifier := newVerifier(a.config.Auth)

	if err := a.initRepositories(ctx, verifier); err != nil {
		a.Shutdown()
		return nil, err
	}
	if err := a.initWebSessions(ctx); err != nil {
		a.Shutdown()
		return nil, err
	}

	a.initRouter(verifier)

	a.server = &http.Server{
		Addr:         a.config.GetServerAddr(),
		Handler:      a.handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: a.config.Server.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Приложение инициализировано",
		zap.String("repository", a.config.Repository.Type),
		zap.String("session_store", a.config.Session.Store),
		zap.String("verifier", a.config.Auth.Verifier))
	return a, nil
}

func newVerifier(cfg config.AuthConfig) service.CredentialVerifier {
	if cfg.Verifier == config.VerifierBcrypt {
		return service.NewBcryptVerifier(cfg.BcryptCost)
	}
	return service.PlaintextVerifier{}
}

func (a *App) initRepositories(ctx context.Context, verifier service.CredentialVerifier) error {
	switch a.config.Repository.Type {
	case config.RepositoryPostgres:
		storage, err := postgres.New(ctx, a.config.Database)
		if err != nil {
			return fmt.Errorf("подключение к PostgreSQL: %w", err)
		}
		a.shutdowns = append(a.shutdowns, storage.Close)

		if a.config.Database.Migrate {
			if err := storage.Migrate(ctx); err != nil {
				return fmt.Errorf("миграции: %w", err)
			}
		}

		a.repos = repositories{
			accounts: storage.Accounts(),
			tasks:    storage.Tasks(),
			sessions: storage.Sessions(),
		}
	default:
		accounts := inmemory.NewAccountStorage()
		if err := seedAdmin(ctx, accounts, verifier, a.config.Auth.DefaultPassword); err != nil {
			return fmt.Errorf("создание администратора: %w", err)
		}
		a.repos = repositories{
			accounts: accounts,
			tasks:    inmemory.NewTaskStorage(),
			sessions: inmemory.NewSessionStorage(),
		}
		logger.Warn("Repository: Данные хранятся в памяти и пропадут после перезапуска")
	}
	return nil
}

// seedAdmin повторяет сид-миграцию для хранилища в памяти: администратор получает id 1.
func seedAdmin(ctx context.Context, accounts service.AccountRepository, verifier service.CredentialVerifier, password string) error {
	encoded, err := verifier.Encode(password)
	if err != nil {
		return err
	}
	return accounts.Create(ctx, &account.Account{
		Username:  "admin",
		FirstName: "Admin",
		LastName:  "Admin",
		Password:  encoded,
		StatusID:  account.StatusEnabled,
		IsAdmin:   true,
	})
}

func (a *App) initWebSessions(ctx context.Context) error {
	switch a.config.Session.Store {
	case config.SessionStoreRedis:
		store, err := websession.NewRedisStore(ctx, a.config.Session.Redis)
		if err != nil {
			return fmt.Errorf("подключение к Redis: %w", err)
		}
		a.webStore = store
	default:
		a.webStore = websession.NewMemoryStore()
	}

	a.shutdowns = append(a.shutdowns, func() {
		if err := a.webStore.Close(); err != nil {
			logger.Error("Ошибка закрытия хранилища веб-сессий", err)
		}
	})
	return nil
}

func (a *App) initRouter(verifier service.CredentialVerifier) {
	accountService := service.NewAccountService(a.repos.accounts, verifier, a.config.Auth.DefaultPassword)
	authService := service.NewAuthService(a.repos.accounts, verifier)
	sessionService := service.NewSessionService(a.repos.sessions)
	taskService := service.NewTaskService(a.repos.tasks)

	manager := websession.NewManager(a.webStore, a.config.Session)
	auth := middleware.NewAuth(manager, accountService, sessionService)

	authHandler := handlers.NewAuthHandler(authService, sessionService, manager)
	taskHandler := handlers.NewTaskHandler(taskService, manager)
	userHandler := handlers.NewUserHandler(accountService, manager)
	adminHandler := handlers.NewAdminHandler(accountService, manager)
	healthHandler := handlers.NewHealthHandler(map[string]handlers.HealthChecker{
		"accounts": accountService,
		"tasks":    taskService,
	})

	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	if a.config.Server.RequestTimeout > 0 {
		r.Use(chimw.Timeout(a.config.Server.RequestTimeout))
	}
	if len(a.config.CORS.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   a.config.CORS.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost},
			AllowedHeaders:   []string{"Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.RateLimit(a.config.RateLimit.RequestsPerMinute))
	r.Use(auth.Authenticate)

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	r.Get("/", authHandler.Root)
	r.Get("/index", authHandler.Root)
	r.Get("/login", authHandler.LoginPage)
	r.Post("/login", authHandler.Login)
	r.Get("/logout", authHandler.Logout)
	r.Get("/health", healthHandler.HealthCheck)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAccount)

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/dashboard", taskHandler.Dashboard) // GET /tasks/dashboard?status=&priority=
			r.Get("/new", taskHandler.NewTask)
			r.Post("/create", taskHandler.CreateTask)
			r.Get("/details", taskHandler.TaskDetails) // GET /tasks/details?id=
			r.Post("/update", taskHandler.UpdateTask)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/profile", userHandler.Profile)
			r.Post("/update", userHandler.UpdateProfile)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin)

		r.Get("/admin", adminHandler.Index)
		r.Get("/admin/", adminHandler.Index)
		r.Route("/admin/accounts", func(r chi.Router) {
			r.Get("/dashboard", adminHandler.Dashboard)
			r.Get("/new", adminHandler.NewAccount)
			r.Post("/create", adminHandler.CreateAccount)
			r.Get("/details", adminHandler.AccountDetails) // GET /admin/accounts/details?id=
			r.Post("/update", adminHandler.UpdateAccount)
		})
	})

	a.router = r
	a.handler = otelhttp.NewHandler(r, "todo-web")
}

// Handler отдаёт корневой обработчик; используется в тестах без запуска сервера.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Run блокируется до отмены ctx, затем останавливает сервер.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Сервер запущен", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			a.Shutdown()
			return fmt.Errorf("сервер: %w", err)
		}
	case <-ctx.Done():
		logger.Info("Получен сигнал остановки")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()
	err := a.server.Shutdown(shutdownCtx)
	if err != nil {
		logger.Error("Ошибка остановки сервера", err)
	}

	a.Shutdown()
	return err
}

// Shutdown вызывает накопленные функции в обратном порядке.
func (a *App) Shutdown() {
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
	a.shutdowns = nil
}
