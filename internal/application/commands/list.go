package commands

import (
	"context"
	"fmt"
	"strings"

	"gardenbook/internal/application"
	"gardenbook/internal/domain"
	"gardenbook/internal/ports"
)

// ListResult contains the hydrated records of one kind and their tree
type ListResult struct {
	Kind    domain.Kind
	Clients []domain.Client
	Plants  []domain.Plant
	Jobs    []domain.Maintenance
	Tree    *domain.TreeNode
}

// Count returns the number of top-level records listed
func (r *ListResult) Count() int {
	switch r.Kind {
	case domain.KindClient:
		return len(r.Clients)
	case domain.KindPlant:
		return len(r.Plants)
	case domain.KindJob:
		return len(r.Jobs)
	}
	return 0
}

// Render writes the tree as indented text
func (r *ListResult) Render() string {
	var sb strings.Builder
	domain.RenderTree(&sb, r.Tree)
	return sb.String()
}

func validateKind(kind domain.Kind) error {
	switch kind {
	case domain.KindClient, domain.KindPlant, domain.KindJob:
		return nil
	}
	return &application.ValidationError{
		Field:   "kind",
		Message: "kind must be client, plant or job",
	}
}

// ListCommand lists every record of one kind, fully hydrated
type ListCommand struct {
	store ports.GardenStore
	Kind  domain.Kind
}

// NewListCommand creates a new ListCommand
func NewListCommand(store ports.GardenStore, kind domain.Kind) *ListCommand {
	return &ListCommand{store: store, Kind: kind}
}

// Validate checks if the list operation is valid
func (c *ListCommand) Validate() error {
	return validateKind(c.Kind)
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context) (*ListResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	result := &ListResult{Kind: c.Kind}
	var err error
	switch c.Kind {
	case domain.KindClient:
		result.Clients, err = c.store.ListClients(ctx)
		result.Tree = domain.ClientTree(result.Clients)
	case domain.KindPlant:
		result.Plants, err = c.store.ListPlants(ctx)
		result.Tree = domain.PlantTree(result.Plants)
	case domain.KindJob:
		result.Jobs, err = c.store.ListJobs(ctx)
		result.Tree = domain.JobTree(result.Jobs)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list %ss: %w", strings.ToLower(c.Kind.String()), err)
	}
	return result, nil
}

// ShowCommand loads a single record by ID
type ShowCommand struct {
	store ports.GardenStore
	Kind  domain.Kind
	ID    int64
}

// NewShowCommand creates a new ShowCommand
func NewShowCommand(store ports.GardenStore, kind domain.Kind, id int64) *ShowCommand {
	return &ShowCommand{store: store, Kind: kind, ID: id}
}

// Validate checks if the show operation is valid
func (c *ShowCommand) Validate() error {
	if err := validateKind(c.Kind); err != nil {
		return err
	}
	return application.ValidateID("id", c.ID)
}

// Execute runs the show command. The result holds exactly one record.
func (c *ShowCommand) Execute(ctx context.Context) (*ListResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	result := &ListResult{Kind: c.Kind}
	var (
		found bool
		err   error
	)
	switch c.Kind {
	case domain.KindClient:
		var client domain.Client
		client, found, err = c.store.GetClient(ctx, c.ID)
		result.Clients = []domain.Client{client}
		result.Tree = domain.ClientTree(result.Clients)
	case domain.KindPlant:
		var plant domain.Plant
		plant, found, err = c.store.GetPlant(ctx, c.ID)
		result.Plants = []domain.Plant{plant}
		result.Tree = domain.PlantTree(result.Plants)
	case domain.KindJob:
		var job domain.Maintenance
		job, found, err = c.store.GetJob(ctx, c.ID)
		result.Jobs = []domain.Maintenance{job}
		result.Tree = domain.JobTree(result.Jobs)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s #%d: %w", c.Kind, c.ID, err)
	}
	if !found {
		return nil, &application.NotFoundError{Kind: c.Kind, ID: c.ID}
	}
	return result, nil
}
