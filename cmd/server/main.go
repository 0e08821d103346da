package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/techclub/club-portal/internal/config"
	"github.com/techclub/club-portal/internal/db"
	"github.com/techclub/club-portal/internal/es"
	"github.com/techclub/club-portal/internal/events"
	"github.com/techclub/club-portal/internal/httpserver"
	"github.com/techclub/club-portal/internal/logging"
	"github.com/techclub/club-portal/internal/repo"
	"github.com/techclub/club-portal/internal/search"
	"github.com/techclub/club-portal/internal/service"
	"github.com/techclub/club-portal/internal/tokens"
	"github.com/techclub/club-portal/internal/upload"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config_load_failed", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gormDB, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("db_open_failed", "error", err)
		os.Exit(1)
	}
	if err := repo.Migrate(gormDB); err != nil {
		logger.Error("db_migrate_failed", "error", err)
		os.Exit(1)
	}
	store := repo.New(gormDB)

	producer := events.NewProducer(cfg.KafkaAddress)
	if producer == nil {
		logger.Info("kafka_disabled", "reason", "KAFKA_ADDRESS not set")
	} else {
		logger.Info("kafka_enabled", "address", cfg.KafkaAddress, "topic", events.Topic)
		defer producer.Close()
	}

	var annSearch *search.Announcements
	if cfg.ESURL == "" {
		logger.Info("search_disabled", "reason", "ES_URL not set")
	} else {
		client, err := es.NewClient(cfg)
		if err != nil {
			logger.Error("search_unavailable", "error", err)
		} else {
			annSearch = &search.Announcements{ES: client}
			logger.Info("search_enabled", "url", cfg.ESURL)
		}
	}

	uploads, err := upload.NewStore(cfg.UploadDir)
	if err != nil {
		logger.Error("upload_dir_failed", "error", err)
		os.Exit(1)
	}

	issuer := &tokens.Issuer{Secret: []byte(cfg.JWTSecret), TTL: cfg.TokenTTL}

	authSvc := &service.AuthService{Repo: store, Issuer: issuer, Events: producer}
	annSvc := &service.AnnouncementService{Repo: store, Events: producer, Search: annSearch}
	eventSvc := &service.EventService{Repo: store, Events: producer}
	actSvc := &service.ActivityService{Repo: store, Events: producer}
	leadSvc := &service.LeadershipService{Repo: store, Events: producer}

	e := httpserver.NewRouter(logger, issuer, cfg.UploadDir, httpserver.Handlers{
		Auth:          &httpserver.AuthHTTP{Svc: authSvc},
		Announcements: &httpserver.AnnouncementHTTP{Svc: annSvc},
		Events:        &httpserver.EventHTTP{Svc: eventSvc, Uploads: uploads},
		Activities:    &httpserver.ActivityHTTP{Svc: actSvc, Uploads: uploads},
		Leadership:    &httpserver.LeadershipHTTP{Svc: leadSvc, Uploads: uploads},
	})

	go func() {
		logger.Info("server_starting", "port", cfg.Port)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server_failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("server_stopping")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_failed", "error", err)
	}
	logger.Info("server_stopped")
}
