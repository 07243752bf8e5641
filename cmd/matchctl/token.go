package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/maxviazov/buddyfinder-service/internal/auth"
	"github.com/spf13/cobra"
)

// TokenCommand mints an HS256 token for local development against a server sharing the secret.
func TokenCommand() *cobra.Command {
	var (
		secret, issuer, subject string
		ttl                     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a development bearer token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if subject == "" {
				subject = uuid.NewString()
			}
			tok, err := auth.Issue(secret, issuer, subject, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&secret, "secret", "", "Signing secret, same as the server's auth.jwt_secret")
	cmd.Flags().StringVar(&issuer, "issuer", "", "Issuer claim")
	cmd.Flags().StringVar(&subject, "sub", "", "User id; a random one is generated when empty")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("secret")
	return cmd
}
