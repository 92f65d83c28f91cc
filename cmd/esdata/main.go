package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/esdata/config"
	"github.com/dhamidi/esdata/parser"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

var log = commonlog.GetLogger("esdata.cli")

// app carries what every subcommand needs after the root command has
// loaded the configuration.
type app struct {
	verbose int
	logFile string
	config  *config.Config
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:          "esdata",
		Short:        "Tools for Endless Sky data files",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().CountVarP(&a.verbose, "verbose", "v", "increase log verbosity")
	rootCmd.PersistentFlags().StringVar(&a.logFile, "log-file", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(newParseCmd(a))
	rootCmd.AddCommand(newCheckCmd(a))
	rootCmd.AddCommand(newBlocksCmd(a))
	rootCmd.AddCommand(newGrammarCmd())
	rootCmd.AddCommand(newLSPCmd(a))
	rootCmd.AddCommand(newImportCmd(a))

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.config = cfg

	verbosity := cfg.Logging.Verbosity
	if cmd.Flags().Changed("verbose") {
		verbosity = a.verbose
	}
	path := cfg.Logging.File
	if a.logFile != "" {
		path = a.logFile
	}
	if path != "" {
		commonlog.Configure(verbosity, &path)
	} else {
		commonlog.Configure(verbosity, nil)
	}
	log.Debugf("%s: max depth %d", cmd.Name(), cfg.Parser.MaxDepth)
	return nil
}

func (a *app) parserOptions(file string) []parser.Option {
	opts := []parser.Option{parser.WithFile(file)}
	if a.config != nil {
		opts = append(opts, parser.WithMaxDepth(a.config.Parser.MaxDepth))
	}
	return opts
}

func readFile(filename string) ([]byte, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return src, nil
}
