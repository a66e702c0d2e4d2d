package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"photogram-api/cache"
	"photogram-api/database"
	"photogram-api/jobs"
	"photogram-api/routes"
	"photogram-api/services"
	"photogram-api/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	RootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDatabase()
	if err != nil {
		return err
	}
	defer database.Close(db)

	ctx := context.Background()

	deps := routes.Dependencies{
		DB:     db,
		Config: cfg,
		Log:    log,
		Mailer: services.NewEmailService(cfg.SMTP, log),
	}

	if cfg.Redis.Address != "" {
		client, err := cache.NewClient(cfg.Redis, log)
		if err != nil {
			log.Warn("Falling back to in-memory token revocation", slog.String("error", err.Error()))
		} else {
			defer client.Close()
			deps.Tokens = cache.NewRedisTokenStore(client)
			deps.Redis = client
		}
	}
	if deps.Tokens == nil {
		store := cache.NewMemoryTokenStore()
		purgeJob := jobs.NewTokenPurgeJob(store, cfg.Jobs.TokenPurgeInterval, log)
		purgeJob.Start()
		defer purgeJob.Stop()
		deps.Tokens = store
	}

	deps.Media, err = storage.New(ctx, cfg.Storage, log)
	if err != nil {
		return err
	}

	router := routes.NewRouter(deps)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	done := make(chan error, 1)
	go func() {
		log.Info("Starting Photogram API server", slog.String("port", cfg.HTTP.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			done <- err
			return
		}
		done <- nil
	}()

	select {
	case err := <-done:
		return err
	case <-quit:
	}
	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", slog.String("error", err.Error()))
	}
	<-done

	log.Info("Server exited")
	return nil
}
