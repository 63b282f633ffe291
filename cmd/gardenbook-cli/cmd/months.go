package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gardenbook/internal/application/commands"
)

func newMonthsCmd() *cobra.Command {
	var plantID int64

	cmd := &cobra.Command{
		Use:   "months [month]",
		Short: "Show the maintenance calendar",
		Long: `With a month name, list the jobs scheduled in that month. With --plant,
list the months in which any job of that plant applies.

Examples:
  gardenbook-cli months March
  gardenbook-cli months --plant 4`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if cmd.Flags().Changed("plant") {
				result, err := commands.NewPlantMonthsCommand(GetStore(), plantID).Execute(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(out, strings.Join(result.Months.Names(), ", "))
				return nil
			}

			if len(args) == 0 {
				return fmt.Errorf("give a month name or --plant")
			}
			result, err := commands.NewCalendarCommand(GetStore(), args[0]).Execute(cmd.Context())
			if err != nil {
				return err
			}
			for _, job := range result.Jobs {
				fmt.Fprintf(out, "#%d %s\n", job.ID, job.Name)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&plantID, "plant", 0, "plant ID")
	return cmd
}
