package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/gapdash/internal/app"
	"github.com/ppiankov/gapdash/internal/server"
	"github.com/ppiankov/gapdash/internal/worker"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard server",
	Long: `Load the dataset once and serve the dashboard until interrupted.

Routes:
  /                         HTML dashboard
  /charts/{graph}.{format}  one chart as svg, png, xlsx or json
  /api/layout, /api/options view model and option sets
  /api/dispatch             POST a selection change, get chart updates
  /ws                       websocket session with live chart updates
  /metrics, /healthz        Prometheus metrics and liveness

Example:
  gapdash serve
  gapdash serve --addr :9000 --locale en
  gapdash serve --dataset-path ./gapminder_unfiltered.csv`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "listen address (default :8050)")
	serveCmd.Flags().Bool("no-rate-limit", false, "disable per-client rate limiting")

	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	if noLimit, _ := cmd.Flags().GetBool("no-rate-limit"); noLimit {
		cfg.RateLimiting.Enabled = false
	}

	// interrupting during the dataset download aborts it
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}

	var limiter *worker.Limiter
	if cfg.RateLimiting.Enabled {
		limiter = worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize, cfg.RateLimiting.ClientIdleTTL)
	}

	srv := server.New(cfg.Server.Addr, server.NewMux(a, limiter, log), log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info("server exited")
	return nil
}
