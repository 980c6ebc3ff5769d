// Package cmd provides the CLI commands for inistore.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/thirteen37/inistore/internal/config"
	"github.com/thirteen37/inistore/internal/ini"
	"github.com/thirteen37/inistore/internal/log"
	"github.com/thirteen37/inistore/internal/store"
)

// ErrNotFound is returned when a selected section or key does not exist.
var ErrNotFound = errors.New("not found")

// app holds the settings resolved before any subcommand runs.
type app struct {
	cfg        *config.Config
	configPath string
	logger     *slog.Logger
}

// NewRootCmd builds the inistore command tree.
func NewRootCmd() *cobra.Command {
	a := &app{cfg: config.Default(), logger: slog.Default()}

	cmd := &cobra.Command{
		Use:   "inistore",
		Short: "Read, edit and convert INI configuration files",
		Long: `inistore reads INI files made of [section] headers and key=value lines,
edits them from the command line and writes them back in canonical form.

Comments and blank lines are not preserved when a file is rewritten.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", "", "Path to the config file (default $XDG_CONFIG_HOME/inistore/config.yaml)")
	cmd.PersistentFlags().String("log_level", "warn", "Set the log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log_format", "text", "Set the log format (text, json)")
	cmd.PersistentFlags().String("line_ending", "lf", "Line ending for written files (lf, crlf)")

	cmd.PersistentPreRunE = func(cc *cobra.Command, _ []string) error {
		return a.setup(cc)
	}

	cmd.AddCommand(newGetCmd(a))
	cmd.AddCommand(newSetCmd(a))
	cmd.AddCommand(newUnsetCmd(a))
	cmd.AddCommand(newRemoveSectionCmd(a))
	cmd.AddCommand(newListCmd(a))
	cmd.AddCommand(newFmtCmd(a))
	cmd.AddCommand(newLintCmd(a))
	cmd.AddCommand(newExportCmd(a))
	cmd.AddCommand(newImportCmd(a))
	cmd.AddCommand(newConfigCmd(a))

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "inistore: %v\n", err)
		os.Exit(1)
	}
}

// setup loads the config file, applies flag overrides and installs the
// logger. Flags set explicitly win over the file.
func (a *app) setup(cc *cobra.Command) error {
	flags := cc.Flags()

	var merr error

	configPath, err := flags.GetString("config")
	if err != nil {
		merr = multierror.Append(merr, err)
	}

	logLevel, err := flags.GetString("log_level")
	if err != nil {
		merr = multierror.Append(merr, err)
	}

	logFormat, err := flags.GetString("log_format")
	if err != nil {
		merr = multierror.Append(merr, err)
	}

	lineEnding, err := flags.GetString("line_ending")
	if err != nil {
		merr = multierror.Append(merr, err)
	}

	if merr != nil {
		return fmt.Errorf("invalid argument: %w", merr)
	}

	if configPath == "" {
		// No config directory on this platform means defaults only.
		configPath, _ = config.DefaultPath()
	}

	cfg := config.Default()
	if configPath != "" {
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}

	if flags.Changed("log_level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("log_format") {
		cfg.LogFormat = logFormat
	}
	if flags.Changed("line_ending") {
		cfg.LineEnding = lineEnding
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid argument: %w", err)
	}

	h, err := log.CreateHandler(cc.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("failed creating log handler: %w", err)
	}
	a.logger = slog.New(h)
	slog.SetDefault(a.logger)
	a.cfg = cfg
	a.configPath = configPath

	a.logger.Debug("configuration loaded",
		slog.String("config", configPath),
		slog.String("line_ending", cfg.LineEnding),
	)

	return nil
}

func (a *app) storeOptions() *store.Options {
	return &store.Options{
		LineEnding: a.cfg.LineEndingString(),
		Logger:     a.logger,
	}
}

// load opens the file at path as a store. A missing file yields an empty
// store that Save will create.
func (a *app) load(path string) (*store.Store, error) {
	s, err := store.Load(path, a.storeOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return s, nil
}

// save writes s back to its file.
func (a *app) save(s *store.Store) error {
	if _, err := s.Save(); err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}
	return nil
}

// readInput reads the named file, or standard input for "-".
func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

// parseInput reads and parses an existing INI file, or standard input for "-".
func (a *app) parseInput(cmd *cobra.Command, name string) (*ini.Document, error) {
	data, err := readInput(cmd, name)
	if err != nil {
		return nil, err
	}
	doc, err := ini.ParseString(string(data), &ini.ParseOptions{Logger: a.logger})
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return doc, nil
}
