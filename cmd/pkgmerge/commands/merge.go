package commands

import (
	"github.com/spf13/cobra"
)

const mergeArgsUsage = "[base.json extra.json [output.json]]"

func (c *CLI) newMergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge " + mergeArgsUsage,
		Short: "Merge extra.json into base.json and write the result",
		Long: "Merge the dependency blocks of extra.json into base.json and write the result " +
			"to output.json (default package.json). Without arguments, every job in the config file is run.",
		Args: cobra.MaximumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Merge(cmd.Context(), args, c.options(false))
		},
	}
}

func (c *CLI) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check " + mergeArgsUsage,
		Short: "Fail if the output is not the current merge result",
		Args:  cobra.MaximumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Merge(cmd.Context(), args, c.options(true))
		},
	}
}

func (c *CLI) newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch " + mergeArgsUsage,
		Short: "Merge, then merge again whenever an input changes",
		Args:  cobra.MaximumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Watch(cmd.Context(), args, c.options(false))
		},
	}
}
