package cmd

import (
	"context"
	"errors"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"tracknest.dev/tracknest/internal/apperrors"
	config "tracknest.dev/tracknest/internal/configs"
	"tracknest.dev/tracknest/internal/constants"
	"tracknest.dev/tracknest/internal/models"
	repository "tracknest.dev/tracknest/internal/repositories"
)

var seedForce bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create fixture users for each role",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()
		database := config.NewDatabase(cfg.DatabaseDSN)
		users := repository.NewUserRepository(database)

		fixtures := []models.User{
			{Email: "admin@example.com", FirstName: "Admin", LastName: "User", Role: constants.RoleAdmin, IsActive: true},
			{Email: "collaborator@example.com", FirstName: "Collaborator", LastName: "User", Role: constants.RoleCollaborator, IsActive: true},
			{Email: "viewer@example.com", FirstName: "Viewer", LastName: "User", Role: constants.RoleViewer, IsActive: true},
		}

		ctx := context.Background()
		created, updated := 0, 0

		for i := range fixtures {
			fixture := fixtures[i]

			existing, err := users.FindByEmail(ctx, fixture.Email)
			if err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
				return err
			}

			if existing != nil {
				if !seedForce {
					log.Printf("user already exists: %s (use --force to update)", fixture.Email)
					continue
				}
				existing.FirstName = fixture.FirstName
				existing.LastName = fixture.LastName
				existing.Role = fixture.Role
				existing.IsActive = fixture.IsActive
				if err := users.Save(ctx, existing); err != nil {
					return err
				}
				updated++
				log.Printf("user updated: %s", fixture.Email)
				continue
			}

			if err := users.Create(ctx, &fixture); err != nil {
				return err
			}
			created++
			log.Printf("user created: %s (%s)", fixture.Email, fixture.Role)
		}

		log.Printf("seed finished: %d created, %d updated", created, updated)
		return nil
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedForce, "force", false, "update fixture users that already exist")
	rootCmd.AddCommand(seedCmd)
}
