package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mental_screening_service/internal/app"
	"mental_screening_service/internal/domain/notification"
	"mental_screening_service/internal/domain/screening"
	"mental_screening_service/internal/infra/config"
	idb "mental_screening_service/internal/infra/database"
	"mental_screening_service/internal/infra/httpapi"
	"mental_screening_service/internal/infra/line"
	"mental_screening_service/internal/infra/logger"
	"mental_screening_service/internal/infra/scheduler"
	"mental_screening_service/internal/infra/telegram"
	"mental_screening_service/internal/infra/token"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger is configured from the config, so this one failure goes to stderr directly.
		os.Stderr.WriteString("FATAL: could not load application configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(cfg)
	log.WithFields(logrus.Fields{
		"log_level":        cfg.LogLevel,
		"environment":      cfg.Environment,
		"notify_enabled":   cfg.NotifyEnabled,
		"notify_min_level": cfg.NotifyMinLevel,
	}).Info("Configuration loaded")

	// Database and repository
	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("Could not connect to database")
	}
	defer db.Close()
	log.Info("Database connection established")

	screeningRepo := idb.NewPostgresScreeningRepository(db)

	// Notification channels
	lineClient := line.NewClient(cfg.LineChannelAccessToken)

	var telegramBot *telebot.Bot
	if cfg.TelegramToken != "" {
		telegramBot, err = telebot.NewBot(telebot.Settings{Token: cfg.TelegramToken, Offline: true})
		if err != nil {
			log.WithError(err).Fatal("Could not create Telegram bot")
		}
	}
	telegramPusher := telegram.NewTelebotAdapter(telegramBot)

	channels := buildChannels(cfg, lineClient, telegramPusher)
	if len(channels) == 0 {
		log.Warn("No notification channels configured; alerts will not be delivered")
	}

	// Services
	dispatchService := app.NewDispatchService(app.DispatchConfig{Enabled: cfg.NotifyEnabled}, log)
	submissionService := app.NewSubmissionService(
		screeningRepo,
		dispatchService,
		channels,
		app.SubmissionConfig{NotifyMinLevel: screening.RiskLevel(cfg.NotifyMinLevel)},
		log,
	)
	reportService := app.NewReportService(screeningRepo, log)

	tokenManager := token.NewManager(cfg.JWTSecret)
	authenticator := app.NewStaticAuthenticator(cfg.AdminUsername, cfg.AdminPassword, tokenManager.Sign)

	// Daily summary scheduler
	summaryScheduler := scheduler.NewSummaryScheduler(reportService, dispatchService, channels, log, cfg.CronSpecDailySummary)
	if err := summaryScheduler.Start(); err != nil {
		log.WithError(err).Fatal("Could not start summary scheduler")
	}

	// HTTP server
	handler := httpapi.NewHandler(
		submissionService,
		reportService,
		dispatchService,
		channels,
		authenticator,
		tokenManager,
		httpapi.NewLineSignatureVerifier(cfg.LineChannelSecret),
		log,
	)
	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: httpapi.NewRouter(handler),
	}

	go func() {
		log.WithField("port", cfg.HTTPPort).Info("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down application...")
	summaryScheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("HTTP server shutdown error")
	}
	log.Info("Application shut down gracefully")
}

// buildChannels registers a channel only when any of its settings is present.
// A fully absent channel is skipped so its absence never counts as a delivery
// failure; a partially configured one is kept and fails individually at
// dispatch time.
func buildChannels(cfg *config.AppConfig, linePusher, telegramPusher notification.Pusher) []notification.Channel {
	var channels []notification.Channel
	if cfg.LineChannelAccessToken != "" || cfg.LineGroupID != "" {
		channels = append(channels, notification.Channel{Label: "line_group", Destination: cfg.LineGroupID, Pusher: linePusher})
	}
	if cfg.TelegramToken != "" || cfg.TelegramAlertChatID != "" {
		channels = append(channels, notification.Channel{Label: "telegram", Destination: cfg.TelegramAlertChatID, Pusher: telegramPusher})
	}
	return channels
}
