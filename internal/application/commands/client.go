package commands

import (
	"context"
	"fmt"

	"gardenbook/internal/application"
	"gardenbook/internal/domain"
	"gardenbook/internal/ports"
)

// ClientResult contains the result of saving a client
type ClientResult struct {
	Client  domain.Client
	Message string
}

// CreateClientCommand inserts a client with its plant links
type CreateClientCommand struct {
	store  ports.GardenStore
	Client domain.Client
}

// NewCreateClientCommand creates a new CreateClientCommand
func NewCreateClientCommand(store ports.GardenStore, client domain.Client) *CreateClientCommand {
	return &CreateClientCommand{store: store, Client: client}
}

// Validate checks if the create operation is valid
func (c *CreateClientCommand) Validate() error {
	return application.ValidateRequired("name", c.Client.Name)
}

// Execute runs the create client command
func (c *CreateClientCommand) Execute(ctx context.Context) (*ClientResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	client := c.Client
	client.ID = 0
	if err := c.store.InsertClient(ctx, &client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &ClientResult{
		Client:  client,
		Message: fmt.Sprintf("Created client: #%d %s", client.ID, client.Name),
	}, nil
}

// UpdateClientCommand rewrites a client and replaces its plant links
type UpdateClientCommand struct {
	store  ports.GardenStore
	Client domain.Client
}

// NewUpdateClientCommand creates a new UpdateClientCommand
func NewUpdateClientCommand(store ports.GardenStore, client domain.Client) *UpdateClientCommand {
	return &UpdateClientCommand{store: store, Client: client}
}

// Validate checks if the update operation is valid
func (c *UpdateClientCommand) Validate() error {
	if err := application.ValidateID("id", c.Client.ID); err != nil {
		return err
	}
	return application.ValidateRequired("name", c.Client.Name)
}

// Execute runs the update client command
func (c *UpdateClientCommand) Execute(ctx context.Context) (*ClientResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	client := c.Client
	found, err := c.store.UpdateClient(ctx, &client)
	if err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	if !found {
		return nil, &application.NotFoundError{Kind: domain.KindClient, ID: client.ID}
	}

	return &ClientResult{
		Client:  client,
		Message: fmt.Sprintf("Updated client: #%d %s (%d plants)", client.ID, client.Name, client.Plants.Len()),
	}, nil
}
