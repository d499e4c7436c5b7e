package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ambient_validation_bot/internal/app"
	"ambient_validation_bot/internal/domain/affirmation"
	"ambient_validation_bot/internal/domain/session"
	"ambient_validation_bot/internal/infra/config"
	idb "ambient_validation_bot/internal/infra/database"
	"ambient_validation_bot/internal/infra/logger"
	"ambient_validation_bot/internal/infra/scheduler"
	"ambient_validation_bot/internal/infra/telegram"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

func main() {
	fmt.Println("Ambient Validation Bot starting...")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Could not load application configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg)
	mainLogger := logger.Component("main")
	mainLogger.WithFields(logrus.Fields{
		"log_level":    cfg.LogLevel,
		"environment":  cfg.Environment,
		"store_driver": cfg.StoreDriver,
	}).Info("Configuration loaded.")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize State Store
	store, closeStore, err := openStateStore(ctx, cfg)
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not open state store")
	}
	defer closeStore()
	mainLogger.Info("State store initialized.")

	// Initialize Telegram Bot
	pref := telebot.Settings{
		Token:  cfg.TelegramToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) { // Global error handler
			entry := logger.Component("telebot").WithError(err)
			if c != nil && c.Sender() != nil {
				entry = entry.WithField("sender_id", c.Sender().ID)
			}
			entry.Error("Bot handler error")
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not create Telegram bot")
	}

	// Initialize Scheduler
	affirmationScheduler := scheduler.NewAffirmationScheduler(logger.Component("scheduler"))

	// Initialize Session Controller
	controller := app.NewSessionController(app.Deps{
		Catalog:  affirmation.DefaultCatalog(),
		Store:    store,
		Notifier: telegram.NewOwnerNotifier(bot, cfg.OwnerTelegramID),
		Timer:    affirmationScheduler,
		Rand:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		Icon:     cfg.NotificationIcon,
		Logger:   logger.Component("app"),
	})
	controller.Start(ctx)
	controller.OfferInstall(telegram.NewCommandMenuOffer(bot))
	mainLogger.Info("Session controller started.")

	if err := affirmationScheduler.ScheduleRollover(cfg.CronSpecDayRollover, controller); err != nil {
		mainLogger.WithError(err).Fatal("Could not add day rollover cron job")
	}
	affirmationScheduler.Start()

	// Register Handlers
	handlerLogger := logger.Component("telegram")
	bot.Use(telegram.OwnerOnly(cfg.OwnerTelegramID, handlerLogger))
	telegram.RegisterBotCommands(bot, controller, handlerLogger)
	telegram.RegisterSessionHandlers(ctx, bot, controller, handlerLogger)
	mainLogger.Info("Command handlers registered.")

	mainLogger.Info("Application setup complete. Bot and Scheduler are starting...")

	// Start bot in a goroutine so it doesn't block graceful shutdown handling
	go bot.Start()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // Block until a signal is received

	mainLogger.Info("Shutting down application...")
	bot.Stop()
	controller.Stop()
	affirmationScheduler.Stop()
	mainLogger.Info("Application shut down gracefully.")
}

// openStateStore returns the configured key-value backend and its closer.
func openStateStore(ctx context.Context, cfg *config.AppConfig) (session.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		store := idb.NewPostgresStateStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return store, func() { db.Close() }, nil
	case config.StoreDriverSQLite:
		db, err := idb.NewSQLiteConnection(cfg.StatePath)
		if err != nil {
			return nil, nil, err
		}
		store := idb.NewSQLiteStateStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return store, func() { db.Close() }, nil
	default:
		return idb.NewFileStateStore(cfg.StatePath), func() {}, nil
	}
}
