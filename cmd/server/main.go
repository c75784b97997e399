package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prasadvm/storekart/internal/config"
	"github.com/prasadvm/storekart/internal/db"
	"github.com/prasadvm/storekart/internal/es"
	"github.com/prasadvm/storekart/internal/httpserver"
	"github.com/prasadvm/storekart/internal/logging"
	"github.com/prasadvm/storekart/internal/mykafka"
	"github.com/prasadvm/storekart/internal/otp"
	"github.com/prasadvm/storekart/internal/repo"
	"github.com/prasadvm/storekart/internal/upload"
)

func main() {
	logger := logging.New(os.Getenv("LOG_LEVEL"))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config load error", "error", err)
		os.Exit(1)
	}
	config.MustNonEmpty(cfg.JWT_SECRET, "JWT_SECRET")
	config.MustNonEmpty(cfg.DB_HOST, "DB_HOST")
	config.MustNonEmpty(cfg.DB_PORT, "DB_PORT")
	config.MustNonEmpty(cfg.DB_USER, "DB_USER")
	config.MustNonEmpty(cfg.DB_NAME, "DB_NAME")

	ctx := context.Background()
	gormDB, err := db.Open(ctx, cfg)
	if err != nil {
		logger.Error("database error", "error", err)
		os.Exit(1)
	}

	uploads, err := upload.NewStore(cfg.UploadDir)
	if err != nil {
		logger.Error("upload dir error", "error", err)
		os.Exit(1)
	}

	var producer *mykafka.Producer
	if cfg.KAFKA_ADDRESS != "" {
		producer, err = mykafka.NewProducer([]string{cfg.KAFKA_ADDRESS})
		if err != nil {
			logger.Error("kafka error", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Warn("KAFKA_ADDRESS not set, event publishing disabled")
	}

	deps := httpserver.Deps{
		Cfg:     cfg,
		Logger:  logger,
		Repo:    repo.New(gormDB),
		Uploads: uploads,
	}
	deps.Producer = producer

	if cfg.ES_URL != "" {
		esClient, err := es.NewClient(cfg)
		if err != nil {
			logger.Error("elasticsearch error", "error", err)
			os.Exit(1)
		}
		deps.ES = esClient
	} else {
		logger.Warn("ES_URL not set, product search disabled")
	}

	if cfg.TWILIO_ACCOUNT_SID != "" && cfg.TWILIO_AUTH_TOKEN != "" {
		deps.Sender = otp.NewTwilioSender(cfg.TWILIO_ACCOUNT_SID, cfg.TWILIO_AUTH_TOKEN, cfg.TWILIO_PHONE_NUMBER)
	} else {
		logger.Warn("twilio not configured, otp sms disabled")
	}

	e := httpserver.New(deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := gormDB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}
	if err := producer.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}
