package commands

import (
	"context"
	"fmt"

	"gardenbook/internal/application"
	"gardenbook/internal/domain"
	"gardenbook/internal/ports"
)

// DeleteResult contains the result of a delete operation
type DeleteResult struct {
	Kind      domain.Kind
	DeletedID int64
	Message   string
}

// DeleteCommand drops a client, plant or job together with every link row
// that references it
type DeleteCommand struct {
	store ports.GardenStore
	Kind  domain.Kind
	ID    int64
}

// NewDeleteCommand creates a new DeleteCommand
func NewDeleteCommand(store ports.GardenStore, kind domain.Kind, id int64) *DeleteCommand {
	return &DeleteCommand{
		store: store,
		Kind:  kind,
		ID:    id,
	}
}

// Validate checks if the delete operation is valid
func (c *DeleteCommand) Validate() error {
	switch c.Kind {
	case domain.KindClient, domain.KindPlant, domain.KindJob:
	default:
		return &application.ValidationError{
			Field:   "kind",
			Message: fmt.Sprintf("cannot delete records of kind %s", c.Kind),
		}
	}
	return application.ValidateID("id", c.ID)
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context) (*DeleteResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var (
		found bool
		err   error
	)
	switch c.Kind {
	case domain.KindClient:
		found, err = c.store.DropClient(ctx, c.ID)
	case domain.KindPlant:
		found, err = c.store.DropPlant(ctx, c.ID)
	case domain.KindJob:
		found, err = c.store.DropJob(ctx, c.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete %s #%d: %w", c.Kind, c.ID, err)
	}
	if !found {
		return nil, &application.NotFoundError{Kind: c.Kind, ID: c.ID}
	}

	return &DeleteResult{
		Kind:      c.Kind,
		DeletedID: c.ID,
		Message:   fmt.Sprintf("Deleted %s #%d", c.Kind, c.ID),
	}, nil
}
