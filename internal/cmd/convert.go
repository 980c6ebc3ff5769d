package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thirteen37/inistore/internal/format"
	"github.com/thirteen37/inistore/internal/format/dialect"
	jsonformat "github.com/thirteen37/inistore/internal/format/json"
	tomlformat "github.com/thirteen37/inistore/internal/format/toml"
	yamlformat "github.com/thirteen37/inistore/internal/format/yaml"
	"github.com/thirteen37/inistore/internal/ini"
	"github.com/thirteen37/inistore/internal/store"
)

// handlerFor returns the converter for a format name.
func handlerFor(name string) (format.Handler, error) {
	switch strings.ToLower(name) {
	case "json":
		return jsonformat.New(), nil
	case "toml":
		return tomlformat.New(), nil
	case "yaml", "yml":
		return yamlformat.New(), nil
	case "ini":
		return dialect.New(), nil
	default:
		return nil, fmt.Errorf("unsupported format %q (want json, toml, yaml or ini)", name)
	}
}

// extFormats maps file extensions to format names.
var extFormats = map[string]string{
	".json":  "json",
	".jsonc": "json",
	".toml":  "toml",
	".yaml":  "yaml",
	".yml":   "yaml",
	".ini":   "ini",
}

// formatFromExt guesses a format name from a file extension.
func formatFromExt(filename string) string {
	return extFormats[strings.ToLower(filepath.Ext(filename))]
}

func newExportCmd(a *app) *cobra.Command {
	var formatName string

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Convert an INI file to JSON, TOML, YAML or another INI dialect",
		Long: `Print an INI file in another format. Sections become objects, tables or
mappings whose values are all strings.

The default format comes from the config file (json unless changed).

Example:
  inistore export settings.ini --format yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if formatName == "" {
				formatName = a.cfg.Format
			}
			h, err := handlerFor(formatName)
			if err != nil {
				return err
			}

			doc, err := a.parseInput(cmd, args[0])
			if err != nil {
				return err
			}

			data, err := h.Encode(doc)
			if err != nil {
				return fmt.Errorf("failed to encode %s as %s: %w", args[0], formatName, err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVar(&formatName, "format", "", "Output format (json, toml, yaml, ini)")

	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	var (
		formatName    string
		out           string
		stripComments bool
	)

	cmd := &cobra.Command{
		Use:   "import <source>",
		Short: "Convert a JSON, TOML, YAML or INI-dialect file to canonical INI",
		Long: `Read a file in another format and write it as canonical INI, to standard
output or to the file given by --out.

The source must be one level of sections holding scalar values. Without
--format the format is guessed from the file extension, then taken from the
config file.

Example:
  inistore import settings.yaml --out settings.ini
  inistore import - --format json < settings.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := args[0]
			if formatName == "" {
				formatName = formatFromExt(src)
			}
			if formatName == "" {
				formatName = a.cfg.Format
			}
			h, err := handlerFor(formatName)
			if err != nil {
				return err
			}
			if jh, ok := h.(*jsonformat.Handler); ok {
				jh.StripComments = stripComments
			}

			data, err := readInput(cmd, src)
			if err != nil {
				return err
			}
			doc, err := h.Decode(data)
			if err != nil {
				return fmt.Errorf("failed to decode %s as %s: %w", src, formatName, err)
			}
			if err := ini.Validate(doc); err != nil {
				return fmt.Errorf("%s cannot be written as INI: %w", src, err)
			}

			s := store.New(a.storeOptions())
			s.SetDocument(doc)
			if out == "" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), s.String())
				return err
			}
			s.SetPath(out)
			return a.save(s)
		},
	}

	cmd.Flags().StringVar(&formatName, "format", "", "Input format (json, toml, yaml, ini)")
	cmd.Flags().StringVar(&out, "out", "", "Write the result to this file instead of standard output")
	cmd.Flags().BoolVar(&stripComments, "strip_comments", false, "Remove // comments from JSON input")

	return cmd
}
