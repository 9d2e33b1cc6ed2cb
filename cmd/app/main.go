package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	redislib "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "gameportal-backend/docs"
	"gameportal-backend/internal/common/cache"
	"gameportal-backend/internal/common/config"
	"gameportal-backend/internal/common/logger"
	"gameportal-backend/internal/common/middleware"
	eventHTTP "gameportal-backend/internal/features/events/delivery/http"
	eventRepo "gameportal-backend/internal/features/events/repository/postgres"
	eventService "gameportal-backend/internal/features/events/service"
	gameHTTP "gameportal-backend/internal/features/games/delivery/http"
	gameRepo "gameportal-backend/internal/features/games/repository/postgres"
	gameService "gameportal-backend/internal/features/games/service"
	paymentHTTP "gameportal-backend/internal/features/payment/delivery/http"
	paymentService "gameportal-backend/internal/features/payment/service"
	profileHTTP "gameportal-backend/internal/features/profile/delivery/http"
	profileRepo "gameportal-backend/internal/features/profile/repository/postgres"
	profileService "gameportal-backend/internal/features/profile/service"
	sessionHTTP "gameportal-backend/internal/features/session/delivery/http"
	sessionRepo "gameportal-backend/internal/features/session/repository"
	sessionMemory "gameportal-backend/internal/features/session/repository/memory"
	sessionRedis "gameportal-backend/internal/features/session/repository/redis"
	sessionService "gameportal-backend/internal/features/session/service"
	txHTTP "gameportal-backend/internal/features/transactions/delivery/http"
	txRepo "gameportal-backend/internal/features/transactions/repository/postgres"
	txService "gameportal-backend/internal/features/transactions/service"
	"gameportal-backend/internal/platform/postgres"
	"gameportal-backend/internal/platform/redis"
	"gameportal-backend/internal/platform/ton"
)

// @title           Game Portal API
// @version         1.0
// @description     Backend for the wallet-keyed gaming portal: profiles, game catalog, stats, payments, sessions and livestream events.

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerSession
// @in header
// @name Authorization
// @description Session token issued by /auth/login, sent as "Bearer <token>"

// @tag.name profile
// @tag.description Wallet-keyed user profiles

// @tag.name games
// @tag.description Game catalog, play and score recording, per-game stats

// @tag.name transactions
// @tag.description Local payment ledger

// @tag.name payment
// @tag.description Game fee purchase flow on TON

// @tag.name auth
// @tag.description Wallet session management

// @tag.name events
// @tag.description Livestream event catalog

func main() {
	cfg := config.Load()

	logger.Init("gameportal-backend", cfg.Debug)
	logger.Info().Bool("debug", cfg.Debug).Msg("Starting game portal backend")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	postgresClient, err := postgres.NewClient(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Postgres")
	}
	defer postgresClient.Close()

	if err := postgresClient.Bootstrap(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Failed to bootstrap database schema")
	}
	logger.Info().Msg("Database connection established")

	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	cacheService := cache.New(redisClient)

	tonClient, err := ton.NewClient(ctx, cfg.Ton.ConfigURL, cfg.Ton.APIBase, cfg.Ton.APIToken)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to TON network")
	}

	userRepository := profileRepo.NewPostgresRepository(postgresClient.DB())
	gameRepository := gameRepo.NewPostgresRepository(postgresClient.DB())
	transactionRepository := txRepo.NewPostgresRepository(postgresClient.DB())
	eventRepository := eventRepo.NewPostgresRepository(postgresClient.DB())

	profileSvc := profileService.NewProfileService(userRepository)
	gameSvc := gameService.NewGameService(gameRepository, userRepository, cacheService)
	transactionSvc := txService.NewTransactionService(transactionRepository, userRepository)
	paymentSvc := paymentService.NewPaymentService(tonClient, gameSvc, transactionSvc,
		cfg.Ton.GameFeeNano, cfg.Ton.MinBalanceNano)

	var sessionStore sessionRepo.Store
	var memoryStore *sessionMemory.Store
	switch cfg.Session.Backend {
	case "memory":
		memoryStore = sessionMemory.NewStore(cfg.Session.TTL)
		sessionStore = memoryStore
	default:
		sessionStore = sessionRedis.NewStore(redisClient, cfg.Session.TTL)
	}
	loginThrottle := sessionRedis.NewLoginThrottle(redisClient, cfg.Session.LoginMaxAttempts, cfg.Session.LoginWindow)
	sessionSvc := sessionService.NewSessionService(sessionStore, loginThrottle, profileSvc)

	eventSvc := eventService.NewEventService(eventRepository)

	logger.Info().Str("session_backend", cfg.Session.Backend).Msg("Services initialized")

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.Origin}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", "Accept"}
	router.Use(cors.New(corsConfig))

	setupRoutes(router, cfg,
		profileHTTP.NewProfileHandler(profileSvc),
		gameHTTP.NewGameHandler(gameSvc),
		txHTTP.NewTransactionHandler(transactionSvc),
		paymentHTTP.NewPaymentHandler(paymentSvc),
		sessionHTTP.NewSessionHandler(sessionSvc),
		eventHTTP.NewEventHandler(eventSvc),
		sessionSvc, postgresClient, redisClient)

	if cfg.Debug {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	if err := eventSvc.StartScheduler(cfg.Events.SchedulerInterval); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start event scheduler")
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	eventSvc.Stop()
	if memoryStore != nil {
		memoryStore.Close()
	}

	logger.Info().Msg("Server exited")
}

func setupRoutes(router *gin.Engine, cfg *config.Config,
	profileHandler *profileHTTP.ProfileHandler,
	gameHandler *gameHTTP.GameHandler,
	transactionHandler *txHTTP.TransactionHandler,
	paymentHandler *paymentHTTP.PaymentHandler,
	sessionHandler *sessionHTTP.SessionHandler,
	eventHandler *eventHTTP.EventHandler,
	sessions middleware.SessionLookup,
	postgresClient *postgres.Client,
	redisClient *redislib.Client,
) {
	api := router.Group("/api")
	{
		// Profile, game and ledger reads stay keyed by wallet address; the
		// client supplies it as a query parameter without a session.
		profileHandler.RegisterRoutes(api)
		gameHandler.RegisterRoutes(api)
		transactionHandler.RegisterRoutes(api)
		sessionHandler.RegisterRoutes(api)
		eventHandler.RegisterRoutes(api)

		authed := api.Group("", middleware.SessionAuth(sessions))
		{
			paymentHandler.RegisterRoutes(authed)
			eventHandler.RegisterAuthRoutes(authed)
		}

		admin := api.Group("/admin", middleware.SessionAuth(sessions), middleware.RequireAdmin(cfg.AdminAddresses))
		{
			gameHandler.RegisterAdminRoutes(admin)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   "gameportal-backend",
		})
	})

	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := postgresClient.HealthCheck(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unready", "error": "postgres unavailable"})
			return
		}
		if err := redisClient.Ping(ctx).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unready", "error": "redis unavailable"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "ready", "timestamp": time.Now().UTC()})
	})
}
