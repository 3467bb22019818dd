package system

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/mindwell_backend/config"
	"github.com/Alijeyrad/mindwell_backend/pkg/authorize"
	pasetotoken "github.com/Alijeyrad/mindwell_backend/pkg/paseto"
)

// NewTokenCommand mints a staff token for operators. It needs the signing key,
// so it only works where the identity secret is configured.
func NewTokenCommand() *cobra.Command {
	var (
		userID string
		role   string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for a staff member",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == "" {
				return fmt.Errorf("--user is required")
			}
			r, err := authorize.ParseRole(role)
			if err != nil {
				return err
			}

			cfgPath, err := cmd.Root().PersistentFlags().GetString("config")
			if err != nil {
				return fmt.Errorf("failed to get config flag: %w", err)
			}
			cfg, err := config.ReadConfig(filepath.Dir(cfgPath))
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}

			mgr, err := pasetotoken.NewPasetoManager(cfg)
			if err != nil {
				return fmt.Errorf("failed to load token keys: %w", err)
			}

			tok, err := mgr.IssueWithTTL(userID, string(r), ttl)
			if err != nil {
				return fmt.Errorf("failed to issue token: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User id placed in the token subject")
	cmd.Flags().StringVar(&role, "role", string(authorize.RoleCounselor), "Role claim (student, counselor, admin)")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "Token lifetime")

	return cmd
}
