// Package main provides the simpletable CLI that filters, sorts
// and paginates tabular data files like a browser table would.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/domonda/go-simpletable/internal/config"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app holds the state shared by all commands
type app struct {
	configFile string
	verbose    bool

	logLevel slog.LevelVar
	logger   *slog.Logger
	defaults *config.Defaults
}

func newRootCmd() *cobra.Command {
	a := new(app)
	rootCmd := &cobra.Command{
		Use:   "simpletable",
		Short: "Render tables from data files",
		Long: `simpletable renders JSON, CSV, XLSX and SQLite data as a paginated table.

The page and page size are read from and written to the query string
of a URL, the same way a table in a web page keeps its state in the
browser location.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log debug messages")

	rootCmd.AddCommand(newRenderCmd(a))
	rootCmd.AddCommand(newLocalesCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// setup configures logging and loads the config.
func (a *app) setup(cmd *cobra.Command, args []string) (err error) {
	a.logLevel.Set(slog.LevelInfo)
	if a.verbose {
		a.logLevel.Set(slog.LevelDebug)
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: &a.logLevel}))

	a.defaults, err = config.Load(a.configFile)
	if err != nil {
		return err
	}
	a.logger.Debug("Loaded config", "file", a.configFile, "defaults", a.defaults)
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "simpletable", version)
		},
	}
}
