package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list <file> [section]",
		Short: "List sections, or the keys of one section",
		Long: `Without a section, print each section name on its own line. With a
section, print its entries as key=value lines in file order.

Example:
  inistore list settings.ini
  inistore list settings.ini server`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.load(args[0])
			if err != nil {
				return err
			}
			doc := s.Document()
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				for _, name := range doc.Sections() {
					fmt.Fprintln(out, name)
				}
				return nil
			}

			sec := doc.Section(args[1])
			if sec == nil {
				return fmt.Errorf("section %q in %s: %w", args[1], args[0], ErrNotFound)
			}
			for _, e := range sec.Entries() {
				fmt.Fprintf(out, "%s=%s\n", e.Key, e.Value)
			}
			return nil
		},
	}
}
