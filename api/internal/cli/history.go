package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"span-checker/api/internal/store"
)

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent checks from the journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts, "stderr")
			if err != nil {
				return err
			}
			db, err := requireJournal(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			subs, err := store.NewSubmissionRepo(db).Recent(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("failed to list submissions: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(subs) == 0 {
				fmt.Fprintln(out, "No submissions in the journal.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CREATED\tSOURCE\tENGINE\tMODEL\tLANG\tLATENCY\tTEXT")
			for _, s := range subs {
				lang := s.Lang
				if lang == "" {
					lang = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					s.CreatedAt.Local().Format("2006-01-02 15:04"),
					s.Source, s.Engine, s.Model, lang,
					(time.Duration(s.LatencyMS) * time.Millisecond).String(),
					snippet(s.Text, 40))
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show")
	return cmd
}

func snippet(s string, n int) string {
	rs := []rune(s)
	for i, r := range rs {
		if r == '\n' || r == '\r' || r == '\t' {
			rs[i] = ' '
		}
	}
	if n <= 0 {
		return ""
	}
	if len(rs) > n {
		if n <= 3 {
			return string(rs[:n])
		}
		return string(rs[:n-3]) + "..."
	}
	return string(rs)
}
