package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	offerdesk "github.com/kaasla/adcash-influencer-assignment"
	"github.com/kaasla/adcash-influencer-assignment/internal/config"
	"github.com/kaasla/adcash-influencer-assignment/internal/handler"
	"github.com/kaasla/adcash-influencer-assignment/internal/httpapi"
	"github.com/kaasla/adcash-influencer-assignment/internal/middleware"
	"github.com/kaasla/adcash-influencer-assignment/internal/repository"
	"github.com/kaasla/adcash-influencer-assignment/internal/service"
	"github.com/kaasla/adcash-influencer-assignment/internal/telegram"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL, repository.PoolOptions{
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Run migrations
	migrationsFS, err := fs.Sub(offerdesk.MigrationsFS, "migrations")
	if err != nil {
		slog.Error("failed to load embedded migrations", "error", err)
		os.Exit(1)
	}
	if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	store := repository.NewPostgresStore(pool)
	influencerService := service.NewInfluencerService(store)

	// Create bot when a token is configured; it also carries the operator log
	var (
		b        *bot.Bot
		notifier service.Notifier = service.NopNotifier{}
	)
	if cfg.BotEnabled() {
		b, err = bot.New(cfg.BotToken, bot.WithMiddlewares(
			middleware.Recover(),
			middleware.Logging(),
			middleware.RateLimit(middleware.NewLimiter(config.RateLimitPerMinute)),
			middleware.InfluencerLoader(influencerService),
		))
		if err != nil {
			slog.Error("failed to create bot", "error", err)
			os.Exit(1)
		}
		notifier = telegram.NewEventLogger(b, cfg)
	}

	// Initialize services
	offerService := service.NewOfferService(store, notifier)
	customPayoutService := service.NewCustomPayoutService(store, notifier)

	if cfg.SeedOnStartup {
		if err := service.Seed(ctx, store); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	if b != nil {
		if err := startBot(ctx, b, cfg, influencerService); err != nil {
			slog.Error("failed to start bot", "error", err)
			os.Exit(1)
		}
	}

	// Start HTTP server
	srv := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: httpapi.NewRouter(httpapi.NewHandler(httpapi.Deps{
			OfferService:        offerService,
			InfluencerService:   influencerService,
			CustomPayoutService: customPayoutService,
		})),
		ReadHeaderTimeout: config.ReadHeaderTimeout,
		ReadTimeout:       config.ReadTimeout,
		WriteTimeout:      config.WriteTimeout,
		IdleTimeout:       config.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("starting http server", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			slog.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown", "error", err)
	}
	slog.Info("stopped gracefully")
}

func startBot(ctx context.Context, b *bot.Bot, cfg *config.Config, influencerService *service.InfluencerService) error {
	me, err := b.GetMe(ctx)
	if err != nil {
		return err
	}
	slog.Info("bot info retrieved", "id", me.ID, "username", me.Username)

	if cfg.DropPendingUpdates {
		if _, err := b.DeleteWebhook(ctx, &bot.DeleteWebhookParams{DropPendingUpdates: true}); err != nil {
			slog.Warn("failed to drop pending updates", "error", err)
		}
	}

	h := handler.New(handler.Deps{
		Bot:               b,
		Cfg:               cfg,
		InfluencerService: influencerService,
		BotUsername:       me.Username,
	})
	h.Register()

	go func() {
		slog.Info("starting bot", "username", me.Username, "id", me.ID)
		b.Start(ctx)
		slog.Info("bot stopped")
	}()
	return nil
}
