package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "placebook/internal/adapters/http_server"
	"placebook/internal/adapters/observability"
	redisad "placebook/internal/adapters/redis"
	"placebook/internal/app"
	"placebook/internal/shared"
	mysqlrepo "placebook/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	categories := mysqlrepo.NewCategoryRepo(db)
	places := mysqlrepo.NewPlaceRepo(db)
	locations := mysqlrepo.NewLocationRepo(db)
	images := mysqlrepo.NewImageRepo(db)
	reservations := mysqlrepo.NewReservationRepo(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	handlers := &server.Handlers{
		Categories:   app.NewCategoryService(categories, cache, cfg.CacheTTL),
		Places:       app.NewPlaceService(places, locations, cache, cfg.CacheTTL),
		Locations:    app.NewLocationService(locations),
		Images:       app.NewImageService(images, places, categories, cfg.ImagePlaceDir, cfg.ImageCatDir),
		Reservations: app.NewReservationService(reservations),
		Otp:          app.NewOtpAttempts(cache, cfg.MaxOTPAttempts, cfg.OTPWindow),
	}

	// http
	srv := server.New(cfg.RateLimitRPS, cfg.RateLimitBurst)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(handlers)

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
