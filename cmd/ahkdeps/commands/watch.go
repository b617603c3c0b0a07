package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/ahkdeps/internal/app"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "Re-print the snapshot whenever scripts change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pin, _ := cmd.Flags().GetBool("pin")
			out, _ := cmd.Flags().GetString("output")
			opts := app.WatchOptions{Options: c.opts, Pin: pin, Output: out}
			if len(args) == 1 {
				opts.File = args[0]
			}
			return c.app.Watch(cmd.Context(), opts)
		},
	}
	cmd.Flags().BoolP("pin", "p", false, "Keep the given file as root while others change")
	cmd.Flags().StringP("output", "o", "auto", "Report style: auto, redraw or append")
	return cmd
}
