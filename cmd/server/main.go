package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/sovarares/standup-tickets/internal/config"
	"github.com/sovarares/standup-tickets/internal/database"
	"github.com/sovarares/standup-tickets/internal/handler"
	"github.com/sovarares/standup-tickets/internal/middleware"
	"github.com/sovarares/standup-tickets/internal/repository"
	"github.com/sovarares/standup-tickets/internal/router"
	"github.com/sovarares/standup-tickets/internal/service"
	"github.com/sovarares/standup-tickets/internal/session"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		logrus.Fatalf("migration failed: %v", err)
	}
	cancel()

	rdb := config.NewRedisClient()
	if rdb == nil {
		logrus.Fatal("failed to connect to Redis; sessions cannot work without it")
	}

	store := session.NewRedisStore(rdb, time.Duration(cfg.SessionTTLMin)*time.Minute)

	var publisher service.EventPublisher
	if cfg.AMQPURL != "" {
		publisher = service.NewAMQPPublisher(cfg.AMQPURL)
	}

	users := repository.NewUserRepo(db)
	shows := repository.NewShowRepo(db)
	tickets := repository.NewTicketRepo(db)
	reports := repository.NewReportRepo(db)
	artists := repository.NewArtistRepo(db)
	venues := repository.NewVenueRepo(db)
	organizers := repository.NewOrganizerRepo(db)

	e := echo.New()
	e.HideBanner = true

	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	router.Register(e, router.Handlers{
		Auth:      handler.NewAuthHandler(cfg, users, store),
		Shows:     handler.NewShowHandler(shows, store),
		Tickets:   handler.NewTicketHandler(tickets, store, publisher),
		Report:    handler.NewReportHandler(reports, store),
		Artists:   handler.NewArtistHandler(artists, store),
		Venues:    handler.NewVenueHandler(venues, shows, store),
		Organizer: handler.NewOrganizerHandler(organizers, shows, store),
	}, cfg.SessionSecret, store, limiter)

	addr := ":" + cfg.Port
	logrus.Infof("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		logrus.Fatal(err)
	}
}
