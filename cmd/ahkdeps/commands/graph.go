package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/ahkdeps/internal/app"
)

func (c *CLI) newTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree [file]",
		Short: "Print the include tree of a script, or of every entry point",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			depth, _ := cmd.Flags().GetInt("depth")
			opts := app.TreeOptions{Options: c.opts, Depth: depth}
			if len(args) == 1 {
				opts.File = args[0]
			}
			return c.app.Tree(cmd.Context(), opts)
		},
	}
	cmd.Flags().IntP("depth", "d", 0, "Levels of includes to pull (0 expands everything)")
	return cmd
}

func (c *CLI) newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot <file>",
		Short: "Print the full include tree and statistics of a script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pin, _ := cmd.Flags().GetBool("pin")
			jsonOut, _ := cmd.Flags().GetBool("json")
			return c.app.Snapshot(cmd.Context(), app.SnapshotOptions{
				Options: c.opts,
				File:    args[0],
				Pin:     pin,
				JSON:    jsonOut,
			})
		},
	}
	cmd.Flags().BoolP("pin", "p", false, "Pin the file as the snapshot root")
	cmd.Flags().Bool("json", false, "Print the snapshot as JSON")
	return cmd
}

func (c *CLI) newEntryPointsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "entrypoints",
		Aliases: []string{"roots"},
		Short:   "List the scripts that no other script includes",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.EntryPoints(cmd.Context(), c.opts)
		},
	}
}

func (c *CLI) newPayloadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payload",
		Short: "Print every entry point tree as size-guarded JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := app.PayloadOptions{Options: c.opts}
			if cmd.Flags().Changed("max-depth") {
				v, _ := cmd.Flags().GetInt("max-depth")
				opts.MaxDepth = &v
			}
			if cmd.Flags().Changed("max-bytes") {
				v, _ := cmd.Flags().GetInt("max-bytes")
				opts.MaxBytes = &v
			}
			return c.app.Payload(cmd.Context(), opts)
		},
	}
	cmd.Flags().Int("max-depth", 0, "Depth after which trees are cut (default from config)")
	cmd.Flags().Int("max-bytes", 0, "Encoded size ceiling in bytes (default from config)")
	return cmd
}
