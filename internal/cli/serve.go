package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"numlist/internal/config"
	"numlist/internal/dataset"
	"numlist/internal/logging"
	"numlist/internal/web"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(app *App) *cobra.Command {
	var configPath string
	var flags config.Server

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the item API server",
		Long: strings.TrimSpace(`
Run the HTTP/JSON item API over an in-memory dataset of sequential integers.

Settings come from defaults, then --config (TOML), then NUMLIST_* environment
variables, then flags. Selection and custom order live only as long as the process.
`),
		Example: strings.TrimSpace(`
numlist serve --addr :5000
numlist serve --config numlist.toml --cors-origin http://localhost:3000
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadServer(configPath)
			if err != nil {
				return writeErr(cmd, err)
			}
			applyServeFlags(cmd, &cfg, flags)
			if err := cfg.Validate(); err != nil {
				return writeErr(cmd, err)
			}

			log := logging.New(cmd.ErrOrStderr(), logging.ProfileRuntime, "numlist")
			ln, err := net.Listen("tcp", cfg.Addr)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := serve(commandContext(cmd), cfg, log, ln); err != nil {
				return writeErr(cmd, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to a TOML config file")
	cmd.Flags().StringVar(&flags.Addr, "addr", "", "Bind address (host:port or :port)")
	cmd.Flags().IntVar(&flags.DatasetSize, "dataset-size", 0, "Number of items to generate")
	cmd.Flags().StringSliceVar(&flags.CORSOrigins, "cors-origin", nil, "Allowed browser origin (repeatable; none allows any)")
	cmd.Flags().StringVar(&flags.StaticDir, "static-dir", "", "Serve a built web client from this directory")
	cmd.Flags().BoolVar(&flags.Gzip, "gzip", true, "Compress API responses")
	cmd.Flags().Float64Var(&flags.SearchRate, "search-rate", 0, "Searching queries per second (0 = unlimited)")
	cmd.Flags().IntVar(&flags.SearchBurst, "search-burst", 0, "Burst size for --search-rate")
	return cmd
}

// applyServeFlags overlays only the flags that were set explicitly.
func applyServeFlags(cmd *cobra.Command, cfg *config.Server, flags config.Server) {
	fs := cmd.Flags()
	if fs.Changed("addr") {
		cfg.Addr = strings.TrimSpace(flags.Addr)
	}
	if fs.Changed("dataset-size") {
		cfg.DatasetSize = flags.DatasetSize
	}
	if fs.Changed("cors-origin") {
		cfg.CORSOrigins = flags.CORSOrigins
	}
	if fs.Changed("static-dir") {
		cfg.StaticDir = strings.TrimSpace(flags.StaticDir)
	}
	if fs.Changed("gzip") {
		cfg.Gzip = flags.Gzip
	}
	if fs.Changed("search-rate") {
		cfg.SearchRate = flags.SearchRate
	}
	if fs.Changed("search-burst") {
		cfg.SearchBurst = flags.SearchBurst
	}
}

// serve runs the API on ln until ctx is cancelled, then shuts down gracefully.
func serve(ctx context.Context, cfg config.Server, log zerolog.Logger, ln net.Listener) error {
	started := time.Now()
	ds := dataset.New(cfg.DatasetSize)
	log.Info().Int("items", ds.Len()).Dur("took", time.Since(started)).Msg("dataset ready")

	srv, err := web.NewServer(web.ServerConfig{
		Store:       ds,
		Logger:      log,
		CORSOrigins: cfg.CORSOrigins,
		StaticDir:   cfg.StaticDir,
		Gzip:        cfg.Gzip,
		SearchRate:  cfg.SearchRate,
		SearchBurst: cfg.SearchBurst,
	})
	if err != nil {
		_ = ln.Close()
		return err
	}

	httpSrv := &http.Server{
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", ln.Addr().String()).Msg("listening")
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		// Change streams never finish on their own; end them before draining.
		srv.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		log.Info().Msg("server stopped")
		return nil
	})
	return g.Wait()
}
