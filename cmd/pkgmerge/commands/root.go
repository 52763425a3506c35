// Package commands implements the CLI commands for pkgmerge.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/pkgmerge/internal/app"
	"go.trai.ch/pkgmerge/internal/build"
	"go.trai.ch/pkgmerge/internal/core/domain"
)

// CLI represents the command line interface for pkgmerge.
type CLI struct {
	app     Application
	rootCmd *cobra.Command

	configPath string
	jsonLogs   bool
}

// Application represents the application logic interface.
type Application interface {
	Merge(ctx context.Context, args []string, opts app.MergeOptions) error
	Watch(ctx context.Context, args []string, opts app.MergeOptions) error
	SetJSONLogs(enable bool)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:           "pkgmerge",
		Short:         "Merge two package.json manifests into one",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if c.jsonLogs {
				c.app.SetJSONLogs(true)
			}
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", domain.ConfigFileName,
		"Config file listing merge jobs, used when no manifests are given")
	rootCmd.PersistentFlags().BoolVar(&c.jsonLogs, "json", false, "Write log lines as JSON")

	c.rootCmd = rootCmd

	rootCmd.AddCommand(c.newMergeCmd())
	rootCmd.AddCommand(c.newCheckCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func (c *CLI) options(check bool) app.MergeOptions {
	return app.MergeOptions{ConfigPath: c.configPath, Check: check}
}
