package main

import (
	"fmt"

	"github.com/maxviazov/buddyfinder-service/internal/sportparams"
	"github.com/maxviazov/buddyfinder-service/pkg/client"
	"github.com/spf13/cobra"
)

func SportsCommand(cfg *clientConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "sports",
		Short: "List the sports catalogue and the parameters each sport accepts",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.New(cfg.Server, cfg.Token)
			if err != nil {
				return err
			}
			sports, err := c.Sports(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, s := range sports {
				fmt.Fprintf(out, "%d\t%s\n", s.ID, s.Name)
				for _, d := range sportparams.For(s.Name) {
					fmt.Fprintf(out, "\t%s (%s", d.Label, d.Kind)
					if d.Unit != "" {
						fmt.Fprintf(out, ", %s", d.Unit)
					}
					fmt.Fprintln(out, ")")
				}
			}
			return nil
		},
	}
}
