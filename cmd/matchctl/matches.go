package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/maxviazov/buddyfinder-service/internal/model"
	"github.com/maxviazov/buddyfinder-service/internal/pager"
	"github.com/maxviazov/buddyfinder-service/internal/service"
	"github.com/maxviazov/buddyfinder-service/internal/sportparams"
	"github.com/maxviazov/buddyfinder-service/pkg/client"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func MatchesCommand(cfg *clientConfig, v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matches",
		Short: "List training partners matched to the caller",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.New(cfg.Server, cfg.Token)
			if err != nil {
				return err
			}
			p := pager.New(c, v.GetInt("page-size"), zerolog.Nop())
			return runMatches(cmd, p, v.GetInt("pages"))
		},
	}
	cmd.Flags().Int("page-size", service.DefaultLimit, "Matches requested per page")
	cmd.Flags().Int("pages", 1, "Maximum number of pages to load, 0 loads everything")
	return cmd
}

func runMatches(cmd *cobra.Command, p *pager.Pager, pages int) error {
	out := cmd.OutOrStdout()
	if err := p.FetchFirstPage(cmd.Context()); err != nil {
		if client.IsIncompleteProfile(err) {
			return errors.New(model.MissingProfileMessage)
		}
		return err
	}
	for loaded := 1; pages == 0 || loaded < pages; loaded++ {
		ok, err := p.LoadMore(cmd.Context())
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "could not load more matches: %v\n", err)
			break
		}
		if !ok {
			break
		}
	}

	items := p.Items()
	if len(items) == 0 {
		fmt.Fprintln(out, "No matches yet. Add more sports or widen your range.")
		return nil
	}
	for i, u := range items {
		printMatch(out, i+1, u)
	}
	if st := p.State(); st.Pagination != nil {
		fmt.Fprintf(out, "\nShowing %d of %d", len(items), st.Pagination.Total)
		if p.HasNextPage() {
			fmt.Fprint(out, " (use --pages to load more)")
		}
		fmt.Fprintln(out)
	}
	return nil
}

func printMatch(w io.Writer, n int, u model.MatchedUser) {
	fmt.Fprintf(w, "%d. %s (@%s) %.1f km away\n", n, u.DisplayName, u.Username, u.DistanceKm)
	if u.Email != "" {
		fmt.Fprintf(w, "   email: %s\n", u.Email)
	}
	if len(u.SocialLinks) > 0 {
		names := make([]string, 0, len(u.SocialLinks))
		for k := range u.SocialLinks {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, k := range names {
			fmt.Fprintf(w, "   %s: %s\n", k, u.SocialLinks[k])
		}
	}
	for _, s := range u.Sports {
		lines := sportparams.Format(s.Name, s.Parameters)
		parts := make([]string, len(lines))
		for i, l := range lines {
			parts[i] = l.Label + " " + l.Value
		}
		if len(parts) == 0 {
			fmt.Fprintf(w, "   - %s\n", s.Name)
			continue
		}
		fmt.Fprintf(w, "   - %s: %s\n", s.Name, strings.Join(parts, ", "))
	}
}
