package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/commu-board/auth-service/internal/di"
	"github.com/commu-board/auth-service/internal/email"
	"github.com/commu-board/auth-service/internal/middleware"
	"github.com/commu-board/auth-service/internal/security"
	"github.com/commu-board/auth-service/internal/token"
	"github.com/commu-board/auth-service/pkg/config"
	"github.com/commu-board/auth-service/pkg/database"
	"github.com/commu-board/auth-service/pkg/logger"
	pkgredis "github.com/commu-board/auth-service/pkg/redis"
	"github.com/commu-board/auth-service/pkg/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logCfg := &logger.Config{
		Level:       "info",
		ServiceName: cfg.App.Name,
		Development: cfg.IsDevelopment(),
	}
	if cfg.App.Debug {
		logCfg.Level = "debug"
	}
	if err := logger.Init(logCfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	appLog := logger.Get()
	appLog.Info("Starting Auth Service...")

	ctx := context.Background()

	// Initialize OpenTelemetry
	telemetryCfg := &telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    cfg.OTel.ServiceName,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
		SampleRatio:    cfg.OTel.SampleRatio,
	}
	if _, err := telemetry.Init(ctx, telemetryCfg); err != nil {
		appLog.Warn(fmt.Sprintf("Failed to initialize telemetry: %v", err))
	} else if telemetryCfg.Enabled {
		appLog.Info(fmt.Sprintf("Telemetry initialized (collector: %s)", telemetryCfg.CollectorAddr))
	}
	defer telemetry.Shutdown(ctx)

	// Initialize database connection
	dbCfg := &database.PostgresConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxConns:        int32(cfg.Database.MaxOpenConns),
		MinConns:        int32(cfg.Database.MaxIdleConns),
		MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
		ConnectTimeout:  5 * time.Second,
		EnableTracing:   cfg.OTel.Enabled,
	}
	db, err := database.NewPostgres(ctx, dbCfg)
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Database connection failed: %v", err))
	}
	defer db.Close()
	appLog.Info(fmt.Sprintf("Database connected (pool: min=%d, max=%d)", dbCfg.MinConns, dbCfg.MaxConns))

	// Apply schema migrations
	if err := db.Migrate(ctx); err != nil {
		appLog.Fatal(fmt.Sprintf("Migration failed: %v", err))
	}

	// Initialize Redis connection (optional - idempotency replay is
	// disabled if the connection fails)
	var redisClient *pkgredis.Client
	if cfg.Redis.Enabled {
		redisCfg := &pkgredis.Config{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		}
		redisClient, err = pkgredis.NewClient(ctx, redisCfg)
		if err != nil {
			appLog.Warn(fmt.Sprintf("Redis connection failed (idempotency disabled): %v", err))
			redisClient = nil
		} else {
			defer redisClient.Close()
			appLog.Info(fmt.Sprintf("Redis connected (%s)", redisCfg.Addr()))
		}
	}

	// Outbound mail: fall back to logging codes when SMTP is not configured
	var sender email.Sender
	if cfg.SMTP.Host != "" {
		sender = email.NewSMTPSender(&email.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	} else {
		appLog.Warn("SMTP not configured, verification codes will be logged")
		sender = email.NewLogSender(appLog.Logger)
	}

	// Build dependency injection container
	container := di.NewContainer(&di.ContainerConfig{
		DB:      db,
		Redis:   redisClient,
		Hasher:  security.NewPasswordHasher(cfg.Security.BcryptCost),
		Issuer:  token.NewIssuer(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL),
		Sender:  sender,
		Version: cfg.App.Version,
	})

	// Setup Gin
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger(appLog))

	if cfg.OTel.Enabled {
		router.Use(telemetry.TracingMiddleware(cfg.OTel.ServiceName))
	}

	// Health check endpoints
	router.GET("/health", container.HealthHandler.Health)
	router.GET("/ready", container.HealthHandler.Ready)

	// API routes
	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		if redisClient != nil {
			auth.Use(middleware.Idempotency(middleware.DefaultIdempotencyConfig(redisClient)))
		}
		{
			auth.POST("/signup", container.AuthHandler.SignUp)
			auth.POST("/signin", container.AuthHandler.SignIn)
			auth.POST("/refresh", container.AuthHandler.Refresh)
			auth.POST("/email/send-code", container.AuthHandler.SendVerificationCode)
			auth.POST("/email/verify", container.AuthHandler.VerifyEmail)

			guarded := auth.Group("")
			guarded.Use(middleware.RequireAuth(container.AuthService))
			{
				guarded.POST("/signout", container.AuthHandler.SignOut)
			}
		}

		users := v1.Group("/users")
		users.Use(middleware.RequireAuth(container.AuthService))
		{
			users.GET("/me", container.UserHandler.Me)
			users.PATCH("/me/nickname", container.UserHandler.UpdateNickName)
			users.PATCH("/me/password", container.UserHandler.UpdatePassword)
			users.DELETE("/me", container.UserHandler.Delete)
		}
	}

	// HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		appLog.Info(fmt.Sprintf("Auth Service listening on %s", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal(fmt.Sprintf("Server failed: %v", err))
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Info("Shutting down Auth Service...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error(fmt.Sprintf("Forced shutdown: %v", err))
	}

	appLog.Info("Auth Service stopped")
}
