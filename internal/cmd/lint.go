package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/thirteen37/inistore/internal/ini"
)

func newLintCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lint <file>",
		Short: "Report lines and entries that would not survive a rewrite",
		Long: `Check a file for lines the parser skips and for names or values that
would change when the file is written back. Every problem is printed, and
the command fails if there is at least one.

Example:
  inistore lint settings.ini`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			data, err := readInput(cmd, name)
			if err != nil {
				return err
			}
			text := string(data)

			doc, err := ini.ParseString(text, &ini.ParseOptions{Logger: a.logger})
			if err != nil {
				return fmt.Errorf("failed to parse %s: %w", name, err)
			}

			merr := lintLines(text)
			if err := ini.Validate(doc); err != nil {
				merr = multierror.Append(merr, err)
			}
			if merr == nil {
				return nil
			}

			var problems *multierror.Error
			if !errors.As(merr, &problems) {
				return merr
			}
			out := cmd.OutOrStdout()
			for _, p := range problems.Errors {
				fmt.Fprintf(out, "%s: %v\n", name, p)
			}
			return fmt.Errorf("%s: %d problem(s) found", name, len(problems.Errors))
		},
	}
}

// lintLines reports each line the parser would skip.
func lintLines(text string) error {
	var merr error
	text = strings.TrimPrefix(text, "\uFEFF")
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if ini.Classify(line).Kind == ini.Invalid {
			merr = multierror.Append(merr, fmt.Errorf("line %d: unrecognized line %q", i+1, strings.TrimSpace(line)))
		}
	}
	return merr
}
