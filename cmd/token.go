package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/jugehoerig/vereinsapi/config"
	"github.com/jugehoerig/vereinsapi/internal/auth"
	"github.com/jugehoerig/vereinsapi/internal/models"
)

// newTokenCommand mints access tokens signed with JWT_SECRET. Accounts live
// in the member system, so this is the way to obtain a token for scripts
// and local testing.
func newTokenCommand() *cobra.Command {
	var (
		id       int64
		username string
		roles    []string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token",
		Example: `  vereinsapi token --username praesidentin --role vorstand
  vereinsapi token --id 7 --username kassier --role admin --role mitglied`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" {
				return errors.New("--username is required")
			}

			cfg, err := config.LoadConfig()
			if err != nil {
				return errors.Wrap(err, "config error")
			}

			manager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry, cfg.Auth.JWTIssuer)
			token, err := manager.Generate(models.Actor{ID: id, Username: username, Roles: roles})
			if err != nil {
				return errors.Wrap(err, "failed to sign token")
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "user id carried in the token")
	cmd.Flags().StringVar(&username, "username", "", "username carried in the token")
	cmd.Flags().StringSliceVar(&roles, "role", nil, "role carried in the token (repeatable)")
	return cmd
}
