package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"span-checker/api/internal/checker"
)

func newCheckCmd(opts *rootOptions) *cobra.Command {
	var (
		file   string
		pretty bool
	)
	cmd := &cobra.Command{
		Use:   "check [text...]",
		Short: "Check one composition and print the result",
		Long: `Checks a single composition. The text is taken from the arguments, from --file,
or from stdin when neither is given. Prints the model's JSON object unless --pretty is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args, file)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(opts, "stderr")
			if err != nil {
				return err
			}
			svc, db, err := buildService(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if db != nil {
				defer db.Close()
			}

			res, err := svc.Check(cmd.Context(), checker.SourceCLI, text)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !pretty {
				_, err = fmt.Fprintln(out, string(res.Raw))
				return err
			}
			fmt.Fprintf(out, "Corrected text:\n\n%s\n", strings.TrimSpace(res.Parsed.CorrectedText))
			if s := strings.TrimSpace(res.Parsed.ExplanationsMD); s != "" {
				fmt.Fprintf(out, "\nExplanations:\n\n%s\n", s)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", `read the composition from a file ("-" for stdin)`)
	cmd.Flags().BoolVar(&pretty, "pretty", false, "print corrected text and explanations instead of JSON")
	return cmd
}

func readInput(cmd *cobra.Command, args []string, file string) (string, error) {
	switch {
	case len(args) > 0 && file != "":
		return "", fmt.Errorf("pass the text either as arguments or with --file, not both")
	case len(args) > 0:
		return strings.Join(args, " "), nil
	case file != "" && file != "-":
		b, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", file, err)
		}
		return string(b), nil
	default:
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(b), nil
	}
}
