package cmd

import (
	"github.com/spf13/cobra"
)

// locateCmd represents the locate command.
var locateCmd = newLocateCmd()

func newLocateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locate [dir]",
		Short: "Print the workspace root enclosing a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			root, err := workflow.Locate(ctx, dirFromArgs(args))
			if err != nil {
				return err
			}

			ui.DisplayRoot(ctx, root)

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(locateCmd)
}
