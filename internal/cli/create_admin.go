package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/formhive/formhive/internal/auth"
	"github.com/formhive/formhive/internal/config"
	"github.com/formhive/formhive/internal/db"
)

func newCreateAdminCmd() *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || password == "" {
				return fmt.Errorf("--username and --password required")
			}
			cfg := config.FromEnv()
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
			if err != nil {
				return err
			}
			defer dbh.Close()
			u, err := auth.CreateUser(ctx, dbh, username, password, "admin")
			if err != nil {
				return err
			}
			fmt.Printf("admin created: %s (%s)\n", u.Username, u.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "admin username")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	return cmd
}
