package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"finpro/internal/advisor"
	"finpro/internal/amqp"
	"finpro/internal/auth"
	"finpro/internal/config"
	apphttp "finpro/internal/http"
	applog "finpro/internal/log"
	"finpro/internal/services"
	"finpro/internal/store"
	"finpro/internal/store/memory"
	"finpro/internal/store/sqlite"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	vocab, err := config.LoadVocabulary(cfg.CategoriesFile)
	if err != nil {
		logger.Error("Failed to load category vocabulary", "error", err, "path", cfg.CategoriesFile)
		os.Exit(1)
	}

	var st store.TransactionStore
	var userStore store.UserStore
	switch cfg.DataBackend {
	case "sqlite":
		repo, err := sqlite.NewRepository(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		defer repo.Close()
		st, userStore = repo, repo
		logger.Info("Initialized sqlite backend", "path", cfg.SQLiteDBPath)
	default:
		mem := memory.New()
		st, userStore = mem, mem
		logger.Info("Initialized memory backend")
	}

	svcOpts := []services.Option{
		services.WithVocabulary(vocab),
		services.WithAdviceLimit(cfg.AdviceRecentLimit),
		services.WithAvgDailyDivisor(cfg.AvgDailyDivisor),
	}

	if cfg.OpenAIAPIKey != "" {
		adv, err := advisor.NewOpenAIAdvisor(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
		if err != nil {
			logger.Error("Failed to initialize advice client", "error", err)
			os.Exit(1)
		}
		svcOpts = append(svcOpts, services.WithAdvisor(adv))
		logger.Info("Advice backend enabled", "model", cfg.OpenAIModel)
	} else {
		logger.Info("Advice disabled - no OPENAI_API_KEY provided")
	}

	if cfg.AMQPURL != "" {
		queue, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		svcOpts = append(svcOpts, services.WithQueue(queue))
		logger.Info("Statement archive enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("Statement archive disabled - no AMQP_URL provided")
	}

	finance := services.NewFinanceService(st, svcOpts...)
	defer finance.Close()

	identity := auth.NewService(userStore)
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	srv := apphttp.NewServer(":"+cfg.Port, finance, identity, tokens, apphttp.Options{
		SummaryCacheTTL: cfg.SummaryCacheTTL,
		RateLimitRPS:    cfg.RateLimitRPS,
		RateLimitBurst:  cfg.RateLimitBurst,
	})

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting finpro server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
