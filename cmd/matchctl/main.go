// matchctl is a terminal client for the matching API: it pages through the caller's
// training-partner matches and can mint development tokens.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const DefaultServer = "http://localhost:8080"

type clientConfig struct {
	Server string
	Token  string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := RootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func RootCommand() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("MATCHCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cfg := &clientConfig{}
	cmd := &cobra.Command{
		Use:           "matchctl",
		Short:         "Training partner matching client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			cfg.Server = v.GetString("server")
			cfg.Token = v.GetString("token")
			return nil
		},
	}
	cmd.PersistentFlags().String("server", DefaultServer, "Base URL of the buddyfinder API")
	cmd.PersistentFlags().String("token", "", "Bearer token (env MATCHCTL_TOKEN)")

	cmd.AddCommand(MatchesCommand(cfg, v))
	cmd.AddCommand(SportsCommand(cfg))
	cmd.AddCommand(TokenCommand())

	return cmd
}
