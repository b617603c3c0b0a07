// Package commands implements the CLI commands for ahkdeps.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/ahkdeps/internal/app"
	"go.trai.ch/ahkdeps/internal/build"
	"go.trai.ch/ahkdeps/internal/ui/output"
)

// Application represents the application logic interface.
type Application interface {
	ConfigureLogging(jsonMode, quiet bool)
	Tree(ctx context.Context, opts app.TreeOptions) error
	Snapshot(ctx context.Context, opts app.SnapshotOptions) error
	EntryPoints(ctx context.Context, opts app.Options) error
	Payload(ctx context.Context, opts app.PayloadOptions) error
	Watch(ctx context.Context, opts app.WatchOptions) error
}

// CLI represents the command line interface for ahkdeps.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
	opts    app.Options
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "ahkdeps",
		Short:         "Explore the #Include graph of AutoHotkey scripts",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
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

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.opts.Root, "root", "C", "", "Directory to discover the workspace from (default: current directory)")
	flags.Bool("json-log", false, "Write log records as JSON")
	flags.BoolP("quiet", "q", false, "Only log warnings and errors")
	flags.String("color", "auto", "Color output: auto, always or never")

	rootCmd.PersistentPreRunE = c.configure

	rootCmd.AddCommand(c.newTreeCmd())
	rootCmd.AddCommand(c.newSnapshotCmd())
	rootCmd.AddCommand(c.newEntryPointsCmd())
	rootCmd.AddCommand(c.newPayloadCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

func (c *CLI) configure(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	jsonLog, _ := flags.GetBool("json-log")
	quiet, _ := flags.GetBool("quiet")
	c.app.ConfigureLogging(jsonLog, quiet)

	color, _ := flags.GetString("color")
	mode, err := output.ParseMode(color)
	if err != nil {
		return err
	}
	c.opts.Color = mode
	return nil
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
