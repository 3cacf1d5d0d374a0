package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"tabula/internal/logging"
)

// rootOptions carries global flags and what PersistentPreRunE resolved from
// them.
type rootOptions struct {
	configPath string
	debug      bool
	logFile    string

	configFile string
	cfg        Config
	logs       logging.Result
	logger     zerolog.Logger
}

// NewRootCmd creates the root command for the tabula CLI.
func NewRootCmd(version string) *cobra.Command {
	opts := &rootOptions{logger: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:           "tabula",
		Short:         "Sort, filter and page through tabular data in the terminal",
		Long:          "tabula: an interactive table for CSV, JSON, YAML and SQLite data",
		Version:       version,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return opts.logs.Close()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: ~/.tabula/config.yaml)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "write JSON logs to this file")

	cmd.AddCommand(
		newViewCmd(opts),
		newPagesCmd(opts),
		newTablesCmd(opts),
		newInitCmd(opts),
	)
	return cmd
}

const rootCmdExample = `  # Browse a CSV file
  tabula view people.csv

  # Browse a SQLite table, sorted by two columns
  tabula view --db app.db --table users --sort role:asc,age:desc

  # Try it on the built-in sample data
  tabula view --sample

  # Print the pagination bar for page 5 of 10
  tabula pages --current 5 --total 10`

// setup loads .env files and configuration, then builds the logger. The view
// command owns the terminal, so it only logs to a file.
func (o *rootOptions) setup(cmd *cobra.Command) error {
	loadDotEnv(".env")
	loadDotEnv(".env.local")

	path := o.configPath
	if path == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		return err
	}
	if o.debug {
		cfg.LogLevel = "debug"
	}
	if o.logFile != "" {
		cfg.LogFile = o.logFile
	}

	res, err := logging.New(logging.Config{
		Level:   cfg.LogLevel,
		File:    cfg.LogFile,
		Console: cmd.Name() != "view",
		Out:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	o.configFile = path
	o.cfg = cfg
	o.logs = res
	o.logger = logging.Component(res.Logger, "cli").With().Str("command", cmd.Name()).Logger()
	o.logger.Debug().Str("config", path).Msg("configuration loaded")
	return nil
}

// Execute runs the CLI and returns the process exit code.
func Execute(version string) int {
	if err := NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
