package app

import (
	"context"
	"errors"
	"go-economy-bot/config"
	"go-economy-bot/db"
	"go-economy-bot/gateway"
	"go-economy-bot/handler"
	"go-economy-bot/logger"
	"go-economy-bot/random"
	"go-economy-bot/repository"
	"go-economy-bot/router"
	"go-economy-bot/service"
	"go-economy-bot/waiter"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func Run() {
	logger.Init()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Log.WithError(err).Warn("Failed to read .env file")
	}

	if err := config.LoadConfig("."); err != nil {
		logger.Log.Fatalf("Error loading configuration: %v", err)
	}
	logger.SetLevel(config.AppConfig.Log.Level)
	logger.Log.Info("Configuration loaded successfully")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, dialect, err := db.Connect()
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	if err := db.Migrate(database, dialect); err != nil {
		logger.Log.Fatalf("Error migrating the database: %v", err)
	}

	var cache service.ICacheClient = service.NopCache{}
	rdb, err := db.ConnectRedis(ctx)
	if err != nil {
		logger.Log.Fatalf("Error connecting to redis: %v", err)
	}
	if rdb != nil {
		defer rdb.Close()
		cache = rdb
	}

	src, err := random.NewSeeded()
	if err != nil {
		logger.Log.Fatalf("Error seeding random source: %v", err)
	}

	discord, err := gateway.NewDiscord(config.AppConfig.Discord.Token)
	if err != nil {
		logger.Log.Fatalf("Error creating discord session: %v", err)
	}

	// Ledger and game rules
	accountRepo := repository.NewAccountRepository(database, dialect)
	ledger := service.NewLedgerService(accountRepo, cache)
	games := service.NewGameService(src)
	answers := waiter.New()

	prefix := config.AppConfig.Bot.Prefix
	bot := router.NewRouter(prefix, discord, answers, router.Handlers{
		Account: handler.NewAccountHandler(ledger, discord, prefix),
		Earn:    handler.NewEarnHandler(ledger, games, discord),
		Game:    handler.NewGameHandler(ledger, games, discord, prefix),
		Quiz:    handler.NewQuizHandler(ledger, games, discord, answers, config.AppConfig.Games.AnswerTimeout),
	})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return discord.Run(gctx, bot)
	})

	if port := config.AppConfig.Server.Port; port != "" {
		srv := &http.Server{
			Addr:              ":" + port,
			Handler:           router.NewHTTPRouter(database),
			ReadHeaderTimeout: 5 * time.Second,
		}

		g.Go(func() error {
			logger.Log.Infof("Health server starting on port :%s", port)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})

		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	logger.Log.WithField("prefix", prefix).Info("Bot is running")

	<-gctx.Done()
	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	if err := g.Wait(); err != nil {
		logger.Log.Fatalf("Bot stopped with error: %v", err)
	}

	logger.Log.Info("Bot exited properly")
}
