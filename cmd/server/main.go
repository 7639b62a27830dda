package main

import (
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"stockroom/internal/config"
	"stockroom/internal/database"
	"stockroom/internal/handler"
	"stockroom/internal/logger"
	"stockroom/internal/queue"
	"stockroom/internal/repository"
	"stockroom/internal/router"
	"stockroom/migrations"
)

func main() {
	// Missing .env is fine; real deployments configure the environment
	// directly.
	_ = godotenv.Load()

	log := logger.New("server")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()

	if err := migrations.Up(db); err != nil {
		log.Fatal().Err(err).Msg("apply migrations")
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn().Msg("redis unavailable, cache and rate limiting disabled")
	}
	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()

	users := repository.NewUserRepo(db)
	manufacturers := repository.NewManufacturerRepo(db)
	items := repository.NewItemRepo(db, manufacturers)

	events := queue.NewPublisher(cfg.AMQPURL)
	go queue.StartConsumer(cfg.AMQPURL, logger.New("consumer"))

	e := echo.New()
	e.HideBanner = true
	router.Register(e, router.Deps{
		Log:           log,
		Users:         users,
		Auth:          handler.NewAuthHandler(users),
		Manufacturers: handler.NewManufacturerHandler(manufacturers, events, rdb, cacheCfg),
		Items:         handler.NewItemHandler(items, events, rdb, cacheCfg),
		RDB:           rdb,
		Cache:         cacheCfg,
		RateLimit:     rlCfg,
		TokenTTL:      cfg.TokenTTL,
	})

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
