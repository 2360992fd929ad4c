package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/VasudevKishan/todo-api/internal/application/auth"
	"github.com/VasudevKishan/todo-api/internal/application/ports"
	"github.com/VasudevKishan/todo-api/internal/application/project"
	"github.com/VasudevKishan/todo-api/internal/application/todo"
	"github.com/VasudevKishan/todo-api/internal/application/user"
	"github.com/VasudevKishan/todo-api/internal/config"
	infraauth "github.com/VasudevKishan/todo-api/internal/infrastructure/auth"
	httprouter "github.com/VasudevKishan/todo-api/internal/infrastructure/http"
	"github.com/VasudevKishan/todo-api/internal/infrastructure/http/handlers"
	"github.com/VasudevKishan/todo-api/internal/infrastructure/http/middleware"
	"github.com/VasudevKishan/todo-api/internal/infrastructure/persistence/memory"
	"github.com/VasudevKishan/todo-api/internal/infrastructure/persistence/mongodb"
	"github.com/VasudevKishan/todo-api/internal/infrastructure/security"
)

type stores struct {
	users    ports.UserRepository
	projects ports.ProjectRepository
	todos    ports.TodoRepository
	health   ports.HealthChecker
	close    func(context.Context) error
}

func newLogger(cfg config.LogConfig) zerolog.Logger {
	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stderr}
	if cfg.Format == "json" {
		out = os.Stderr
	}
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func openStores(ctx context.Context, cfg config.StorageConfig) (*stores, error) {
	if cfg.Driver == config.DriverMemory {
		s := memory.NewStore()
		return &stores{
			users:    memory.NewUserRepository(s),
			projects: memory.NewProjectRepository(s),
			todos:    memory.NewTodoRepository(s),
			health:   s,
			close:    func(context.Context) error { return nil },
		}, nil
	}
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	s, err := mongodb.Connect(connectCtx, cfg.URI, cfg.Name)
	if err != nil {
		return nil, err
	}
	if err := s.EnsureIndexes(connectCtx); err != nil {
		_ = s.Close(ctx)
		return nil, err
	}
	return &stores{
		users:    mongodb.NewUserRepository(s),
		projects: mongodb.NewProjectRepository(s),
		todos:    mongodb.NewTodoRepository(s),
		health:   s,
		close:    s.Close,
	}, nil
}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		bootLog := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
		bootLog.Fatal().Err(err).Msg("load config")
	}
	log := newLogger(cfg.Log)

	ctx := context.Background()
	st, err := openStores(ctx, cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("open store")
	}
	log.Info().Str("driver", cfg.Storage.Driver).Msg("store ready")

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("parse REDIS_URL")
		}
		redisClient = redis.NewClient(opt)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis ping failed; continuing without redis")
			redisClient = nil
		}
	}

	hasher, err := security.NewHasher(security.HasherConfig{
		Algorithm:  cfg.Password.Hasher,
		BcryptCost: cfg.Password.BcryptCost,
		Argon2: security.Argon2Params{
			Memory:      cfg.Argon2.Memory,
			Iterations:  cfg.Argon2.Iterations,
			Parallelism: cfg.Argon2.Parallelism,
			SaltLength:  16,
			KeyLength:   32,
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("create password hasher")
	}

	issuer, err := infraauth.NewTokenIssuer(infraauth.TokenIssuerConfig{
		AccessSecret:  cfg.JWT.AccessSecret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		Issuer:        cfg.JWT.Issuer,
		AccessExpiry:  time.Duration(cfg.JWT.AccessExpiry) * time.Second,
		RefreshExpiry: time.Duration(cfg.JWT.RefreshExpiry) * time.Second,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("create token issuer")
	}

	authHandler := handlers.NewAuthHandler(
		auth.NewLogin(st.users, hasher, issuer),
		auth.NewRefresh(st.users, issuer),
		auth.NewWhoAmI(st.users),
		handlers.CookieConfig{Secure: cfg.Cookie.Secure, MaxAge: cfg.Cookie.MaxAge},
		log,
	)
	usersHandler := handlers.NewUsersHandler(
		user.NewCreateUser(st.users, hasher),
		user.NewListUsers(st.users),
		user.NewUpdateUser(st.users, hasher),
		user.NewDeleteUser(st.users, st.projects),
		log,
	)
	projectsHandler := handlers.NewProjectsHandler(
		project.NewListProjects(st.projects),
		project.NewCreateProject(st.projects),
		project.NewUpdateProject(st.projects),
		project.NewDeleteProject(st.projects, st.todos),
		log,
	)
	todosHandler := handlers.NewTodosHandler(
		todo.NewListTodos(st.todos),
		todo.NewGetTodo(st.todos),
		todo.NewCreateTodo(st.todos, st.projects),
		todo.NewUpdateTodo(st.todos, st.projects),
		todo.NewDeleteTodo(st.todos),
		log,
	)

	loginStore, err := middleware.NewLimiterStore(redisClient, "todoapi_login")
	if err != nil {
		log.Fatal().Err(err).Msg("create login limiter store")
	}
	loginLimit, err := middleware.NewLoginRateLimiter(cfg.RateLimit.Login, loginStore, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create login rate limiter")
	}
	ipStore, err := middleware.NewLimiterStore(redisClient, "todoapi_ip")
	if err != nil {
		log.Fatal().Err(err).Msg("create IP limiter store")
	}
	ipLimit, err := middleware.NewIPRateLimiter(cfg.RateLimit.RatePerIP, ipStore)
	if err != nil {
		log.Fatal().Err(err).Msg("create IP rate limiter")
	}

	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:     authHandler,
		HealthHandler:   handlers.NewHealthHandler(st.health, redisClient),
		UsersHandler:    usersHandler,
		ProjectsHandler: projectsHandler,
		TodosHandler:    todosHandler,
		RequireJWT:      middleware.NewAuthValidator(issuer).Handler,
		Log:             log,
		Secure:          middleware.NewSecure(middleware.SecureOptions(cfg.Secure.IsDevelopment)),
		CORS:            middleware.CORS(cfg.CORS.AllowedOrigins, nil, nil),
		IPRateLimit:     ipLimit,
		LoginRateLimit:  loginLimit,
		Metrics:         cfg.Metrics.Enabled,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if err := st.close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("close store")
	}
	log.Info().Msg("server stopped")
}
