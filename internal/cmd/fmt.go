package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thirteen37/inistore/internal/ini"
	"github.com/thirteen37/inistore/internal/store"
)

func newFmtCmd(a *app) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "fmt <file>",
		Short: "Print a file in canonical form",
		Long: `Parse a file and print it back in canonical form: one key=value per line,
a blank line between sections, comments and unrecognized lines dropped.

Use - to read from standard input.

Example:
  inistore fmt settings.ini
  inistore fmt -w settings.ini`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if write && name == "-" {
				return fmt.Errorf("cannot rewrite standard input")
			}

			doc, err := a.parseInput(cmd, name)
			if err != nil {
				return err
			}

			if !write {
				_, err := io.WriteString(cmd.OutOrStdout(), ini.Serialize(doc, &ini.SerializeOptions{LineEnding: a.cfg.LineEndingString()}))
				return err
			}

			s := store.New(a.storeOptions())
			s.SetDocument(doc)
			s.SetPath(name)
			return a.save(s)
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the result back to the file")

	return cmd
}
