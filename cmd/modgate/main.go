package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/devfest-tools/modgate/pkg/app/authorization"
	appModeration "github.com/devfest-tools/modgate/pkg/app/moderation"
	"github.com/devfest-tools/modgate/pkg/config"
	handlers "github.com/devfest-tools/modgate/pkg/handlers/http"
	"github.com/devfest-tools/modgate/pkg/infra/database"
	"github.com/devfest-tools/modgate/pkg/infra/hash"
	"github.com/devfest-tools/modgate/pkg/infra/httpx"
	infraJwt "github.com/devfest-tools/modgate/pkg/infra/jwt"
	infraLogger "github.com/devfest-tools/modgate/pkg/infra/logger"
	"github.com/devfest-tools/modgate/pkg/infra/providers"
	"github.com/devfest-tools/modgate/pkg/infra/providers/factory"
	"github.com/devfest-tools/modgate/pkg/infra/repository"
	"github.com/devfest-tools/modgate/pkg/middleware"
	"github.com/devfest-tools/modgate/pkg/server"
	"github.com/joho/godotenv"
	"github.com/valyala/fasthttp"
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	logger := infraLogger.NewLogger()

	if err := config.Load("./config"); err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	cfg := config.GetConfig()

	db, err := database.NewDB(logger, &database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.WithError(err).Error("failed to close database")
		}
	}()

	// repository
	userRepository := repository.NewUserRepository(db.DB)
	allowlistRepository := repository.NewAllowlistRepository(db.DB)
	submissionRepository := repository.NewSubmissionRepository(db.DB)

	// infra
	jwtManager := infraJwt.NewJwtManager(&cfg.Server)
	passwordHasher := hash.NewBcryptHasher()
	httpClient := &fasthttp.Client{
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	providerLocator := factory.NewProviderLocator(httpClient)
	modelClient, err := providerLocator.Get(cfg.Model.Provider)
	if err != nil {
		logger.Fatalf("Failed to initialize model client: %v", err)
	}
	providerConfig := &providers.Config{
		APIKey:      cfg.Model.APIKey,
		Model:       cfg.Model.Model,
		MaxTokens:   cfg.Model.MaxOutputTokens,
		Temperature: cfg.Model.Temperature,
	}
	modelBreaker := httpx.NewCircuitBreaker("model", logger, 30*time.Second, 5)

	// service
	authorizer := authorization.NewChecker(logger, allowlistRepository)
	promptBuilder := appModeration.NewPromptBuilder(cfg.Moderation.PolicyTemplate)
	pipeline := appModeration.NewPipeline(
		logger,
		authorizer,
		promptBuilder,
		modelClient,
		providerConfig,
		modelBreaker,
		cfg.Model.Timeout,
		userRepository,
		submissionRepository,
	)

	// middleware
	middlewareTransport := middleware.Transport{
		SessionMiddleware:      middleware.NewSessionMiddleware(logger, jwtManager),
		AdminAuthMiddleware:    middleware.NewAdminAuthMiddleware(logger, authorizer),
		MetricsMiddleware:      middleware.NewMetricsMiddleware(logger),
		PanicRecoverMiddleware: middleware.NewPanicRecoverMiddleware(logger),
	}

	// handlers
	handlerTransport := handlers.HandlerTransport{
		SignupHandler: handlers.NewSignupHandler(
			logger, &cfg.Server, userRepository, allowlistRepository, passwordHasher, jwtManager,
		),
		LoginHandler: handlers.NewLoginHandler(
			logger, &cfg.Server, userRepository, allowlistRepository, passwordHasher, jwtManager,
		),
		LogoutHandler: handlers.NewLogoutHandler(&cfg.Server),
		MeHandler:     handlers.NewMeHandler(),

		ModerateHandler: handlers.NewModerateHandler(logger, pipeline),
		HistoryHandler:  handlers.NewHistoryHandler(logger, userRepository, submissionRepository),

		ListAuthorizedUsersHandler:  handlers.NewListAuthorizedUsersHandler(logger, allowlistRepository),
		CreateAuthorizedUserHandler: handlers.NewCreateAuthorizedUserHandler(logger, allowlistRepository),
		UpdateAuthorizedUserHandler: handlers.NewUpdateAuthorizedUserHandler(logger, allowlistRepository),
		DeleteAuthorizedUserHandler: handlers.NewDeleteAuthorizedUserHandler(logger, allowlistRepository),
	}

	srv := server.NewAppServer(server.AppServerDI{
		MiddlewareTransport: middlewareTransport,
		HandlerTransport:    handlerTransport,
		Config:              cfg,
		Logger:              logger,
	})

	go func() {
		if err := srv.Run(); err != nil {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	if err := srv.Shutdown(); err != nil {
		logger.WithError(err).Error("failed to shut down server")
	}
}
