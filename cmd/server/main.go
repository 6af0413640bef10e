// Command server serves mortality cause rankings over HTTP.
//
// Usage:
//
//	server serve --addr :8080
//	server validate --dataset ./mortality_data.csv
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"howwillidie/internal/api"
	"howwillidie/internal/dataset"
	"howwillidie/internal/engine"
)

type config struct {
	addr     string
	dataset  string
	logLevel string
	rate     float64
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := &config{}

	root := &cobra.Command{
		Use:          "server",
		Short:        "Leading causes of death by location, age and sex",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := parseLevel(cfg.logLevel)
			if err != nil {
				return err
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return nil
		},
	}
	root.PersistentFlags().StringVar(&cfg.dataset, "dataset", "", "CSV dataset path (.csv or .csv.gz); empty uses the embedded dataset")
	root.PersistentFlags().StringVar(&cfg.logLevel, "log-level", "info", "debug, info, warn or error")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cfg)
		},
	}
	serveCmd.Flags().StringVar(&cfg.addr, "addr", ":8080", "listen address")
	serveCmd.Flags().Float64Var(&cfg.rate, "rate", 20, "requests per second per client IP, 0 disables limiting")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Parse the dataset and check it is usable",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cfg.dataset)
			if err != nil {
				return err
			}
			if err := validateStore(store); err != nil {
				return err
			}
			info := store.Info()
			fmt.Fprintf(cmd.OutOrStdout(), "dataset ok: %d records, %d locations, fingerprint %s\n",
				info.Records, info.Locations, info.Fingerprint)
			return nil
		},
	}

	root.AddCommand(serveCmd, validateCmd)
	return root
}

func serve(ctx context.Context, cfg *config) error {
	// 1. Initialize Echo (starts instantly)
	e := echo.New()
	e.HideBanner = true
	e.JSONSerializer = api.JSONSerializer{}
	e.Logger.SetLevel(echoLevel(cfg.logLevel))
	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(api.RateLimit(cfg.rate))

	// 2. Handler starts without data and answers 503 until the load finishes
	h := api.NewHandler(nil)
	h.RegisterRoutes(e)

	g, ctx := errgroup.WithContext(ctx)

	// 3. Load the dataset in the background. A corrupt dataset stops the server.
	g.Go(func() error {
		slog.Info("background: loading dataset", "source", sourceName(cfg.dataset))
		store, err := openStore(cfg.dataset)
		if err != nil {
			h.SetLoadError(err)
			return err
		}
		h.SetStore(store)
		slog.Info("background: dataset ready, API fully available")
		return nil
	})

	// 4. Start server
	g.Go(func() error {
		slog.Info("server listening", "addr", cfg.addr)
		if err := e.Start(cfg.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// openStore returns the memoized embedded store, or parses the file at path.
func openStore(path string) (*engine.Store, error) {
	if path == "" {
		return engine.Default()
	}
	data, err := dataset.Open(path)
	if err != nil {
		return nil, err
	}
	return engine.Load(data)
}

func validateStore(store *engine.Store) error {
	if store.Len() == 0 {
		return errors.New("dataset has no records")
	}
	if len(store.Locations()) == 0 {
		return errors.New("dataset has no locations")
	}
	for _, r := range store.Records() {
		if _, _, ok := engine.ParseAgeRange(r.AgeName); ok {
			return nil
		}
	}
	return errors.New("dataset has no parseable age labels")
}

func sourceName(path string) string {
	if path == "" {
		return "embedded:" + dataset.EmbeddedName
	}
	return path
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

func echoLevel(s string) log.Lvl {
	switch s {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	default:
		return log.INFO
	}
}
