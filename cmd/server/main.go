package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/iliyamo/movitour/internal/config"
	"github.com/iliyamo/movitour/internal/database"
	"github.com/iliyamo/movitour/internal/handler"
	"github.com/iliyamo/movitour/internal/logger"
	"github.com/iliyamo/movitour/internal/notify"
	"github.com/iliyamo/movitour/internal/queue"
	"github.com/iliyamo/movitour/internal/repository"
	"github.com/iliyamo/movitour/internal/router"
	"github.com/iliyamo/movitour/internal/service"
)

var (
	buildVersion string
	buildCommit  string
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		logger.NewLogger("movitour-server", "info").Fatal().Err(err).Msg("error getting configs")
	}
	log := logger.NewLogger("movitour-server", cfg.LogLevel)
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	log.Info().Str("version", buildVersion).Str("commit", buildCommit).Str("env", cfg.Env).Msg("starting")

	db, err := database.Open(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	if cfg.DB.Migrate {
		if err := database.Migrate(db); err != nil {
			log.Fatal().Err(err).Msg("error applying migrations")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Booking events are optional; without a broker URL reservations are
	// stored without publishing.
	var (
		publisher *queue.Publisher
		events    service.EventPublisher
		consumers sync.WaitGroup
	)
	if cfg.Events.RabbitURL != "" {
		publisher = queue.NewPublisher(cfg.Events.RabbitURL)
		events = publisher
		if cfg.Events.Consumer {
			consumerLog := logger.NewLogger("booking-consumer", cfg.LogLevel)
			consumers.Add(1)
			go func() {
				defer consumers.Done()
				_ = queue.StartReservationConsumer(ctx, cfg.Events.RabbitURL, cfg.Events.LogPath, consumerLog)
			}()
		}
	}

	auth, err := service.NewAuthService(repository.NewUserRepo(db), cfg.Auth)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating auth service")
	}
	catalog := service.NewCatalogService(repository.NewCityRepo(db), repository.NewOfferRepo(db))
	reservations := service.NewReservationService(repository.NewReservationRepo(db), events, log)
	support := service.NewSupportService(notify.NewSMTPSender(cfg.Mail))

	e := router.New(log, router.Handlers{
		Auth:         handler.NewAuthHandler(auth),
		Catalog:      handler.NewCatalogHandler(catalog),
		Reservations: handler.NewReservationHandler(reservations),
		Support:      handler.NewSupportHandler(support),
	}, auth)

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}
	consumers.Wait()
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			log.Error().Err(err).Msg("close event publisher")
		}
	}
	if err := db.Close(); err != nil {
		log.Error().Err(err).Msg("close database")
	}
}
