package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Freeeeeet/medislot/internal/app"
	"github.com/Freeeeeet/medislot/internal/catalog"
	"github.com/Freeeeeet/medislot/internal/config"
	"github.com/Freeeeeet/medislot/internal/controller"
	"github.com/Freeeeeet/medislot/internal/metrics"
	"github.com/Freeeeeet/medislot/internal/service"
	"github.com/Freeeeeet/medislot/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-telegram/bot"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "medislot",
		Short:        "Demo healthcare portal with role-based guided workflows",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(botCmd())
	rootCmd.AddCommand(tuiCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// deps is everything both front ends share.
type deps struct {
	cfg      *config.Config
	logger   *zap.Logger
	registry *prometheus.Registry
	services service.Services
}

func bootstrap(logOutputs ...string) (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := app.NewLogger(cfg.Environment, logOutputs...)

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		logger.Error("Failed to load catalog", zap.String("path", cfg.CatalogPath), zap.Error(err))
		return nil, err
	}

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	return &deps{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		services: service.NewServices(cat, cfg.SignInLatency, collector, logger),
	}, nil
}

// startOps runs /healthz and /metrics in the background when OPS_ADDR is set.
func (rt *deps) startOps(ctx context.Context) {
	if rt.cfg.OpsAddr == "" {
		return
	}
	srv := app.NewOpsServer(rt.cfg.OpsAddr, rt.registry, rt.logger)
	go func() {
		if err := srv.Run(ctx); err != nil {
			rt.logger.Error("Ops server stopped", zap.Error(err))
		}
	}()
}

func botCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the portal as a Telegram bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := bootstrap()
			if err != nil {
				return err
			}
			defer rt.logger.Sync()

			if err := rt.cfg.RequireTelegram(); err != nil {
				return err
			}

			rt.logger.Info("Starting MediSlot bot",
				zap.String("environment", rt.cfg.Environment),
				zap.Duration("signin_latency", rt.cfg.SignInLatency),
				zap.Int("token_length", len(rt.cfg.TelegramToken)))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			limiter := controller.NewRateLimiter(rt.cfg.RateLimit, rt.cfg.RateBurst, rt.logger)

			b, err := bot.New(rt.cfg.TelegramToken, bot.WithMiddlewares(limiter.Middleware))
			if err != nil {
				rt.logger.Error("Failed to create bot", zap.Error(err))
				return err
			}

			botController := controller.NewBotController(b, rt.services, rt.logger)
			if err := botController.RegisterHandlers(ctx); err != nil {
				// меню команд не критично
				rt.logger.Warn("Bot commands not set", zap.Error(err))
			}

			rt.startOps(ctx)

			return botController.Start(ctx)
		},
	}
}

func tuiCmd() *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the portal in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := bootstrap(logFile)
			if err != nil {
				return err
			}
			defer rt.logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			rt.startOps(ctx)

			rt.logger.Info("Starting MediSlot TUI", zap.String("environment", rt.cfg.Environment))

			p := tea.NewProgram(
				tui.NewApp(rt.services, rt.logger),
				tea.WithAltScreen(),
				tea.WithContext(ctx),
			)
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "medislot.log", "where the TUI writes its log")
	return cmd
}
