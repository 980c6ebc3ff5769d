package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thirteen37/inistore/internal/ini"
	"github.com/thirteen37/inistore/internal/path"
)

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <file> <selector>",
		Short: "Print the value of a key",
		Long: `Print the value stored under a key.

Arguments:
  file      INI file to read
  selector  section.key, or a JSON array such as '["a.b","key"]' when the
            section name contains a dot

Example:
  inistore get settings.ini server.host`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := path.Parse(args[1])
			if err != nil {
				return err
			}

			s, err := a.load(args[0])
			if err != nil {
				return err
			}

			value, ok := s.Get(key.Section, key.Name)
			if !ok {
				return fmt.Errorf("key %s in %s: %w", key, args[0], ErrNotFound)
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}

func newSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <file> <selector> <value>",
		Short: "Set the value of a key",
		Long: `Set a key to a value, creating the section and the file as needed.

Values that would not read back unchanged, such as values with leading or
trailing spaces, are rejected. A file that already holds the value is not
rewritten.

Example:
  inistore set settings.ini server.port 8080`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := path.Parse(args[1])
			if err != nil {
				return err
			}
			value := args[2]

			if err := ini.ValidateEntry(key.Section, key.Name, value); err != nil {
				return fmt.Errorf("cannot set %s: %w", key, err)
			}

			s, err := a.load(args[0])
			if err != nil {
				return err
			}
			before := s.Document().Clone()
			s.Set(key.Section, key.Name, value)
			if _, err := os.Stat(args[0]); err == nil && before.String() == s.Document().String() {
				// Leave the file, and its comments, alone.
				a.logger.Debug("value unchanged, not rewriting", slog.String("path", args[0]))
				return nil
			}
			return a.save(s)
		},
	}
}

func newUnsetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "unset <file> <selector>",
		Short: "Remove a key",
		Long: `Remove a key from its section. The section itself is kept.

Example:
  inistore unset settings.ini server.debug`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := path.Parse(args[1])
			if err != nil {
				return err
			}

			s, err := a.load(args[0])
			if err != nil {
				return err
			}

			if _, ok := s.Get(key.Section, key.Name); !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Key %s not found\n", key)
				return nil
			}
			s.Remove(key.Section, key.Name)
			return a.save(s)
		},
	}
}

func newRemoveSectionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-section <file> <section>",
		Short: "Remove a section and all of its keys",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			section := args[1]

			s, err := a.load(args[0])
			if err != nil {
				return err
			}

			if !s.Document().HasSection(section) {
				fmt.Fprintf(cmd.OutOrStdout(), "Section %q not found\n", section)
				return nil
			}
			s.RemoveSection(section)
			return a.save(s)
		},
	}
}
