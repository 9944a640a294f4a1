package cmd

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/redis/rueidis"
	"github.com/spf13/cobra"

	config "tracknest.dev/tracknest/internal/configs"
	httpapi "tracknest.dev/tracknest/internal/http"
	"tracknest.dev/tracknest/internal/logging"
	"tracknest.dev/tracknest/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the tracker core behind its HTTP collaborator layer",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()
		logging.Init(cfg.LogFile)

		database := config.NewDatabase(cfg.DatabaseDSN)

		var redisClient rueidis.Client
		if cfg.RedisEnabled {
			client, err := config.NewRedisClient(cfg.RedisAddr)
			if err != nil {
				logging.Logger.WithError(err).Warn("redis unavailable, unread-count cache disabled")
			} else {
				redisClient = client
				defer redisClient.Close()
			}
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		tracker := services.NewTracker(database, redisClient, cfg.DispatchQueueSize)

		e := echo.New()
		handler := httpapi.NewHandler(tracker)
		httpapi.Register(e, handler, cfg.RateLimit)

		go func() {
			log.Printf("HTTP server listening on %s", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil {
				log.Printf("server stopped: %v", err)
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
		)
		defer cancel()

		_ = e.Shutdown(shutdownCtx)
		tracker.Shutdown(shutdownCtx)

		log.Println("HTTP server and event dispatcher shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
