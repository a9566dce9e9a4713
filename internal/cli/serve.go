package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	httpDelivery "github.com/cafeassist/backend/internal/delivery/http"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API on the configured port.

Endpoints:
  GET  /health
  POST /api/v1/assistant   {"message": "..."}
  GET  /api/v1/products[/:id]
  POST /api/v1/contact
  /api/v1/admin/...        (X-Admin-Key, see admin.key)`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	log.Infof("Starting cafe backend v%s", httpDelivery.Version)
	log.Infof("Environment: %s", a.cfg.Server.Environment)
	log.Infof("Catalog: %s", a.cfg.Catalog.DSN)
	log.Infof("Cache TTL: %s", a.cfg.Cache.TTL)
	if a.cfg.Admin.Key == "" {
		log.Warn("Admin API disabled (set CAFE_ADMIN_KEY to enable)")
	}

	handler := httpDelivery.NewHandler(a.assistant, a.catalog, a.notifications)
	router := httpDelivery.SetupRouter(a.cfg, handler)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", a.cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
