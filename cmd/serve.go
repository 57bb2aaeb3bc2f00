package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/seo-boostpro/backend/api"
	"github.com/seo-boostpro/backend/middleware"
)

const (
	shutdownTimeout     = 10 * time.Second
	maintenanceInterval = time.Hour
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  `Start the HTTP API server. Configuration comes from .env files, the environment and SEO_CONFIG_FILE.`,
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	gin.SetMode(a.cfg.GinMode)

	limiter := middleware.NewRateLimiter(a.cfg.RateLimit.PerSecond, a.cfg.RateLimit.Burst)
	router := api.NewRouter(api.RouterConfig{
		Handler:     api.NewHandler(a.service, a.storage, a.cfg.DevMode, a.logger),
		Logger:      a.logger,
		RateLimiter: limiter,
		Recorder:    a.storage,
	})

	srv := &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		ticker := time.NewTicker(maintenanceInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				a.maintain()
				limiter.Cleanup()
			}
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info().Str("addr", "http://localhost:"+a.cfg.Port).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	a.logger.Info().Msg("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
