package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/spf13/cobra"
)

func newTokenCmd(a *app) *cobra.Command {
	var subject string
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for an actor",
		RunE: func(cmd *cobra.Command, args []string) error {
			if subject == "" {
				return errors.New("--subject is required")
			}
			if ttl <= 0 {
				ttl = a.cfg.JWTExpiryDuration
			}
			token, err := middleware.IssueToken(a.cfg.JWTSecret, a.cfg.JWTIssuer, subject, ttl)
			if err != nil {
				return fmt.Errorf("failed to sign token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "actor id placed in the token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default JWT_EXPIRY_DURATION)")
	return cmd
}
