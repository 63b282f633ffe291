package commands

import (
	"context"
	"fmt"

	"gardenbook/internal/application"
	"gardenbook/internal/domain"
	"gardenbook/internal/ports"
)

// PlantResult contains the result of saving a plant
type PlantResult struct {
	Plant   domain.Plant
	Message string
}

func validatePlant(p domain.Plant) error {
	if err := application.ValidateRequired("name", p.Name); err != nil {
		return err
	}
	return application.ValidateRequired("latinName", p.LatinName)
}

// CreatePlantCommand inserts a plant with its job links
type CreatePlantCommand struct {
	store ports.GardenStore
	Plant domain.Plant
}

// NewCreatePlantCommand creates a new CreatePlantCommand
func NewCreatePlantCommand(store ports.GardenStore, plant domain.Plant) *CreatePlantCommand {
	return &CreatePlantCommand{store: store, Plant: plant}
}

// Validate checks if the create operation is valid
func (c *CreatePlantCommand) Validate() error {
	return validatePlant(c.Plant)
}

// Execute runs the create plant command
func (c *CreatePlantCommand) Execute(ctx context.Context) (*PlantResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	plant := c.Plant
	plant.ID = 0
	if err := c.store.InsertPlant(ctx, &plant); err != nil {
		return nil, fmt.Errorf("failed to create plant: %w", err)
	}

	return &PlantResult{
		Plant:   plant,
		Message: fmt.Sprintf("Created plant: #%d %s (%s)", plant.ID, plant.Name, plant.LatinName),
	}, nil
}

// UpdatePlantCommand rewrites a plant and replaces its job links
type UpdatePlantCommand struct {
	store ports.GardenStore
	Plant domain.Plant
}

// NewUpdatePlantCommand creates a new UpdatePlantCommand
func NewUpdatePlantCommand(store ports.GardenStore, plant domain.Plant) *UpdatePlantCommand {
	return &UpdatePlantCommand{store: store, Plant: plant}
}

// Validate checks if the update operation is valid
func (c *UpdatePlantCommand) Validate() error {
	if err := application.ValidateID("id", c.Plant.ID); err != nil {
		return err
	}
	return validatePlant(c.Plant)
}

// Execute runs the update plant command
func (c *UpdatePlantCommand) Execute(ctx context.Context) (*PlantResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	plant := c.Plant
	found, err := c.store.UpdatePlant(ctx, &plant)
	if err != nil {
		return nil, fmt.Errorf("failed to update plant: %w", err)
	}
	if !found {
		return nil, &application.NotFoundError{Kind: domain.KindPlant, ID: plant.ID}
	}

	return &PlantResult{
		Plant:   plant,
		Message: fmt.Sprintf("Updated plant: #%d %s (%d jobs)", plant.ID, plant.Name, plant.Jobs.Len()),
	}, nil
}
