package cmd

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	config "tracknest.dev/tracknest/internal/configs"
	repository "tracknest.dev/tracknest/internal/repositories"
)

var purgeDays int

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete notifications older than the retention window",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()
		database := config.NewDatabase(cfg.DatabaseDSN)
		notifications := repository.NewNotificationRepository(database, nil)

		days := purgeDays
		if days <= 0 {
			days = cfg.NotificationRetentionDays
		}

		cutoff := time.Now().UTC().AddDate(0, 0, -days)
		deleted, err := notifications.DeleteOlderThan(context.Background(), cutoff)
		if err != nil {
			return err
		}

		log.Printf("purged %d notifications older than %d days", deleted, days)
		return nil
	},
}

func init() {
	purgeCmd.Flags().IntVar(&purgeDays, "days", 0, "retention window in days (defaults to NOTIFICATION_RETENTION_DAYS)")
	rootCmd.AddCommand(purgeCmd)
}
