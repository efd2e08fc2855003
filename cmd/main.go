package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/Darios2021/coc-backend/config"
	"github.com/Darios2021/coc-backend/db"
	"github.com/Darios2021/coc-backend/internal/audit"
	authhandler "github.com/Darios2021/coc-backend/internal/auth/handler"
	authrepo "github.com/Darios2021/coc-backend/internal/auth/repository/postgres"
	authservice "github.com/Darios2021/coc-backend/internal/auth/service"
	docshandler "github.com/Darios2021/coc-backend/internal/docs/handler"
	docsrepo "github.com/Darios2021/coc-backend/internal/docs/repository/postgres"
	docsservice "github.com/Darios2021/coc-backend/internal/docs/service"
	"github.com/Darios2021/coc-backend/internal/docs/storage"
	"github.com/Darios2021/coc-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()

	ctx := context.Background()

	pool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	redisClient := redis.NewClient(redisOpts)

	var objectStore storage.ObjectStore = storage.Disabled{}
	if cfg.MinioEnabled() {
		objectStore, err = storage.NewMinioStore(cfg.MinioEndpoint, cfg.MinioAccessKey,
			cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		if err != nil {
			log.Fatalf("minio: %v", err)
		}
	} else {
		log.Println("object storage disabled: MINIO_* variables not set")
	}

	repo := authrepo.NewPostgresRepository(pool)
	recorder := audit.NewPostgresRecorder(pool)
	tokenService := authservice.NewTokenService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret,
		cfg.AccessExpiryMin, cfg.RefreshExpiryDays)
	authService := authservice.NewAuthService(repo, repo, tokenService, recorder, cfg)
	authHandler := authhandler.NewAuthHandler(authService, authhandler.NewCookieWriter(cfg))

	documentRepo := docsrepo.NewPostgresRepository(pool)
	ingestService := docsservice.NewIngestService(documentRepo, objectStore, cfg.MaxPages)
	docsHandler := docshandler.NewDocsHandler(ingestService, documentRepo, objectStore)
	uploadsHandler := docshandler.NewUploadsHandler(objectStore)

	loginLimiter := middleware.NewLoginLimiter(redisClient,
		time.Duration(cfg.LoginLimitWindow)*time.Minute, cfg.LoginLimitMax)

	app := fiber.New(fiber.Config{
		BodyLimit: cfg.FileMaxMB * 1024 * 1024,
	})

	app.Use(cors.New(corsConfig(cfg.FrontOrigins)))

	authhandler.RegisterRoutes(app, authHandler, loginLimiter.Handle)
	docshandler.RegisterRoutes(app, docsHandler, uploadsHandler,
		authhandler.RequireAuth(tokenService), authhandler.RequireRole("admin"))

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}

// corsConfig opens credentialed cross-origin access only for explicitly
// configured front origins. With FRONT_ORIGIN unset the default policy
// applies; credentials must stay off there, fiber rejects the
// wildcard+credentials combination at startup.
func corsConfig(origins []string) cors.Config {
	if len(origins) == 0 {
		return cors.Config{}
	}

	return cors.Config{
		AllowOrigins:     strings.Join(origins, ","),
		AllowCredentials: true,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Content-Type,Authorization,X-Requested-With",
		ExposeHeaders:    "Content-Disposition",
	}
}
