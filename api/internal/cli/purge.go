package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"span-checker/api/internal/store"
)

func newPurgeCmd(opts *rootOptions) *cobra.Command {
	var olderThan time.Duration
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete journal entries older than the given age",
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

			n, err := store.NewSubmissionRepo(db).PurgeOlderThan(cmd.Context(), olderThan)
			if err != nil {
				return fmt.Errorf("failed to purge: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d submission(s) older than %s.\n", n, olderThan)
			return nil
		},
	}
	cmd.Flags().DurationVar(&olderThan, "older-than", 30*24*time.Hour, "minimum age of the entries to delete")
	return cmd
}
