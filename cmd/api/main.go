package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/hrushireddy/tyredetect-api/config"
	"github.com/hrushireddy/tyredetect-api/internal/container"
	"github.com/hrushireddy/tyredetect-api/internal/inference"
	pginfra "github.com/hrushireddy/tyredetect-api/internal/infrastructure/postgres"
	"github.com/hrushireddy/tyredetect-api/internal/interface/middleware"
	"github.com/hrushireddy/tyredetect-api/internal/router"
	"github.com/hrushireddy/tyredetect-api/pkg/helpers"
	"github.com/hrushireddy/tyredetect-api/pkg/mailer"
	"github.com/hrushireddy/tyredetect-api/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	// Postgres pool
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	// Run migrations using database/sql with pgx stdlib
	if err := runMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatalf("migration failed: %v", err)
	}

	// Redis (rate limiting)
	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer func() { _ = rdb.Close() }()

	// JWT
	jwtManager := helpers.NewJWTManager(cfg.JWTSecret, cfg.SessionTokenTTL, cfg.ResetTokenTTL)

	// Outbound collaborators
	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	inf := inference.NewClient(cfg.InferenceURL, cfg.InferenceTimeout, cfg.MaxUploadBytes, logger)

	// Provide infra singletons to container for registry auto-wiring
	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetPGPool(pool)
	container.SetRedis(rdb)
	container.SetJWT(jwtManager)
	container.SetMailer(mg)
	container.SetInference(inf)

	// Gin engine and global middleware
	r := gin.New()
	r.Use(middleware.Recovery(logger, cfg.Env))
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	r.Use(cors.New(corsConfig(cfg)))
	if cfg.HTTPLogEnabled || cfg.Env == "development" {
		r.Use(gin.Logger())
	}

	// Registry: auto-register modules using container
	reg := router.NewRegistry(r)
	router.InitModules(reg)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		logger.Infof("relaying predictions to %s", cfg.InferenceURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}

// corsConfig builds the CORS policy: explicit allow-list normally,
// permissive under the development env.
func corsConfig(cfg *config.Config) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.Env == "development" {
		c.AllowOriginFunc = func(origin string) bool { return true }
	} else {
		c.AllowOrigins = cfg.CORSOrigins()
	}
	return c
}

func runMigrations(dsn string, migrationsDir string, logger *logrus.Logger) error {
	// Open sql DB via pgx stdlib
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	driver, err := pgmigrate.WithInstance(db, &pgmigrate.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsDir), "postgres", driver)
	if err != nil {
		return err
	}
	logger.Info("running migrations...")
	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migrations to run")
		return nil
	}
	return err
}
