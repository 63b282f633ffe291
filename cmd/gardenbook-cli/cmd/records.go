package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"gardenbook/internal/application/commands"
	"gardenbook/internal/domain"
)

// recordFlags holds the field flags shared by add and update
type recordFlags struct {
	name           string
	latinName      string
	bloomingPeriod string
	desc           string
	months         []string
	links          []int64
}

func (f *recordFlags) register(cmd *cobra.Command, kind domain.Kind) {
	cmd.Flags().StringVar(&f.name, "name", "", "name (required)")
	switch kind {
	case domain.KindClient:
		cmd.Flags().Int64SliceVar(&f.links, "plants", nil, "IDs of the plants the client owns")
	case domain.KindPlant:
		cmd.Flags().StringVar(&f.latinName, "latin-name", "", "latin name (required, unique)")
		cmd.Flags().StringVar(&f.bloomingPeriod, "blooming-period", "", "blooming period")
		cmd.Flags().Int64SliceVar(&f.links, "jobs", nil, "IDs of the maintenance jobs the plant needs")
	case domain.KindJob:
		cmd.Flags().StringVar(&f.desc, "desc", "", "description")
		cmd.Flags().StringSliceVar(&f.months, "months", nil, "months in which the job applies, e.g. January,March")
	}
}

// save creates a new record, or rewrites record id when update is set
func (f *recordFlags) save(ctx context.Context, kind domain.Kind, id int64, update bool) (string, error) {
	switch kind {
	case domain.KindClient:
		c := domain.Client{ID: id, Name: f.name, Plants: domain.RefIDs[domain.Plant](f.links...)}
		var res *commands.ClientResult
		var err error
		if !update {
			res, err = commands.NewCreateClientCommand(GetStore(), c).Execute(ctx)
		} else {
			res, err = commands.NewUpdateClientCommand(GetStore(), c).Execute(ctx)
		}
		if err != nil {
			return "", err
		}
		return res.Message, nil

	case domain.KindPlant:
		p := domain.Plant{
			ID:             id,
			Name:           f.name,
			LatinName:      f.latinName,
			BloomingPeriod: f.bloomingPeriod,
			Jobs:           domain.RefIDs[domain.Maintenance](f.links...),
		}
		var res *commands.PlantResult
		var err error
		if !update {
			res, err = commands.NewCreatePlantCommand(GetStore(), p).Execute(ctx)
		} else {
			res, err = commands.NewUpdatePlantCommand(GetStore(), p).Execute(ctx)
		}
		if err != nil {
			return "", err
		}
		return res.Message, nil

	default:
		m := domain.Maintenance{
			ID:          id,
			Name:        f.name,
			Description: f.desc,
			Months:      domain.ParseMonthSet(f.months...),
		}
		var res *commands.JobResult
		var err error
		if !update {
			res, err = commands.NewCreateJobCommand(GetStore(), m).Execute(ctx)
		} else {
			res, err = commands.NewUpdateJobCommand(GetStore(), m).Execute(ctx)
		}
		if err != nil {
			return "", err
		}
		return res.Message, nil
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid ID: %q", s)
	}
	return id, nil
}

// newRecordCmd creates the list/show/add/update/delete commands for kind
func newRecordCmd(kind domain.Kind) *cobra.Command {
	name := strings.ToLower(kind.String())

	cmd := &cobra.Command{
		Use:   name,
		Short: fmt.Sprintf("Manage %ss", name),
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List all %ss with their links", name),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.NewListCommand(GetStore(), kind).Execute(cmd.Context())
			if err != nil {
				return err
			}
			if result.Count() == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No %ss.\n", name)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), result.Render())
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: fmt.Sprintf("Show one %s with its links", name),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			result, err := commands.NewShowCommand(GetStore(), kind, id).Execute(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), result.Render())
			return nil
		},
	}

	var addFlags recordFlags
	addCmd := &cobra.Command{
		Use:   "add",
		Short: fmt.Sprintf("Add a %s", name),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := addFlags.save(cmd.Context(), kind, 0, false)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
	addFlags.register(addCmd, kind)

	var updateFlags recordFlags
	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: fmt.Sprintf("Rewrite a %s", name),
		Long: fmt.Sprintf(`Rewrite a %s. Every field is replaced, and so are its links:
links not given again are removed.`, name),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			msg, err := updateFlags.save(cmd.Context(), kind, id, true)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
	updateFlags.register(updateCmd, kind)

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: fmt.Sprintf("Delete a %s and its links", name),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			result, err := commands.NewDeleteCommand(GetStore(), kind, id).Execute(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}

	cmd.AddCommand(listCmd, showCmd, addCmd, updateCmd, deleteCmd)
	return cmd
}
