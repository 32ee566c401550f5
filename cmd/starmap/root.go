package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"starmap/internal/middleware"
	"starmap/internal/persistence"
	"starmap/internal/server"
	"starmap/internal/session"
	"starmap/internal/shared/config"
	"starmap/internal/shared/logger"
)

const (
	exitFailure = 1
	exitCorrupt = 3
)

var rootCmd = &cobra.Command{
	Use:   "starmap [path]",
	Short: "Procedural galaxy explorer",
	Long: "starmap generates a galaxy of star systems, serves it over HTTP while the " +
		"simulation runs, and saves it back to path (default default.rim) on shutdown.",
	Args:              cobra.MaximumNArgs(1),
	PersistentPreRunE: loadConfig,
	RunE:              runServe,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "starmap:", err)
		if errors.Is(err, persistence.ErrCorrupt) {
			os.Exit(exitCorrupt)
		}
		os.Exit(exitFailure)
	}
}

func init() {
	rootCmd.PersistentFlags().Uint64("seed", 0, "generation seed (0 picks one)")
	rootCmd.PersistentFlags().Int("systems", 0, "number of star systems to generate (0 uses GALAXY_SYSTEM_COUNT)")
	rootCmd.PersistentFlags().String("backend", "", "storage backend: file, postgres or redis")
	rootCmd.Flags().Bool("regenerate-on-corrupt", false, "replace an unreadable save with a new galaxy")
}

// loadConfig reads the environment and applies flag overrides
func loadConfig(cmd *cobra.Command, args []string) error {
	if err := config.Init(); err != nil {
		return err
	}
	cfg := config.GlobalConfig

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Generation.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("systems") {
		cfg.Galaxy.SystemCount, _ = flags.GetInt("systems")
		if cfg.Galaxy.SystemCount < 0 {
			return fmt.Errorf("--systems must not be negative")
		}
	}
	if flags.Changed("backend") {
		cfg.Storage.Backend, _ = flags.GetString("backend")
		switch cfg.Storage.Backend {
		case config.StorageBackendFile, config.StorageBackendPostgres, config.StorageBackendRedis:
		default:
			return fmt.Errorf("unknown backend %q", cfg.Storage.Backend)
		}
	}

	logger.Init()
	return nil
}

func keyFromArgs(cfg *config.Config, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.Storage.DefaultPath
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.GlobalConfig
	key := keyFromArgs(cfg, args)
	regenerate, _ := cmd.Flags().GetBool("regenerate-on-corrupt")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, slog.Default())
	if err != nil {
		return err
	}
	defer a.close()

	g, err := a.loadOrGenerate(ctx, key, regenerate)
	if err != nil {
		return err
	}

	s := session.New(g, a.service, a.repo, session.Options{
		Key:   key,
		Drift: cfg.Simulation.Drift,
		Seed:  a.seed,
	}, a.collector, a.logger)

	simDone := make(chan struct{})
	go func() {
		defer close(simDone)
		_ = s.Run(ctx, cfg.Simulation.TickInterval)
	}()

	routes := server.NewRoutes(s, a.collector, cfg)
	rateLimiter := middleware.NewRateLimiter(ctx, cfg.RateLimit)
	cors := middleware.NewCORS(cfg.Frontend)
	handler := cors.Middleware(rateLimiter.Middleware(routes.Setup()))

	serveErr := server.Serve(ctx, server.New(cfg.Server, handler))
	stop()
	<-simDone

	// the signal context is done by now; saving gets its own
	if err := s.Save(context.WithoutCancel(cmd.Context())); err != nil {
		return errors.Join(serveErr, err)
	}
	a.logger.Info("Galaxy saved on shutdown", "key", key)
	return serveErr
}
