package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"gardenbook/internal/application/commands"
)

func newLinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "link <relation> <left-id> <right-id>",
		Short: "Link two records",
		Long: `Link a plant to a client or a maintenance job to a plant.

Examples:
  gardenbook-cli link client-plant 1 4    # client 1 owns plant 4
  gardenbook-cli link plant-job 4 2       # plant 4 needs job 2`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			left, err := parseID(args[1])
			if err != nil {
				return err
			}
			right, err := parseID(args[2])
			if err != nil {
				return err
			}

			rel := commands.ParseRelation(args[0])
			result, err := commands.NewLinkCommand(GetStore(), rel, left, right).Execute(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}
}

func newUnlinkCmd() *cobra.Command {
	var left, right int64

	cmd := &cobra.Command{
		Use:   "unlink <relation>",
		Short: "Remove links between records",
		Long: `Remove links. With --left and --right one link is removed; with only one
of them every link of that record is removed. Without either nothing is
removed.

Examples:
  gardenbook-cli unlink client-plant --left 1 --right 4
  gardenbook-cli unlink plant-job --right 2    # job 2 off every plant`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var l, r *int64
			if cmd.Flags().Changed("left") {
				l = &left
			}
			if cmd.Flags().Changed("right") {
				r = &right
			}

			rel := commands.ParseRelation(args[0])
			result, err := commands.NewUnlinkCommand(GetStore(), rel, l, r).Execute(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}

	cmd.Flags().Int64Var(&left, "left", 0, "client ID for client-plant, plant ID for plant-job")
	cmd.Flags().Int64Var(&right, "right", 0, "plant ID for client-plant, job ID for plant-job")
	return cmd
}
