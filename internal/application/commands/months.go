package commands

import (
	"context"
	"fmt"
	"time"

	"gardenbook/internal/application"
	"gardenbook/internal/domain"
	"gardenbook/internal/ports"
)

// CalendarResult lists the jobs scheduled in a month
type CalendarResult struct {
	Month time.Month
	Jobs  []domain.Maintenance
}

// CalendarCommand finds the maintenance jobs scheduled in one month
type CalendarCommand struct {
	store ports.GardenStore
	Month string
}

// NewCalendarCommand creates a new CalendarCommand
func NewCalendarCommand(store ports.GardenStore, month string) *CalendarCommand {
	return &CalendarCommand{store: store, Month: month}
}

// Validate checks that the month is one of the canonical names
func (c *CalendarCommand) Validate() error {
	if _, ok := domain.ParseMonth(c.Month); !ok {
		return &application.ValidationError{
			Field:   "month",
			Message: fmt.Sprintf("unknown month: %q", c.Month),
		}
	}
	return nil
}

// Execute runs the calendar command
func (c *CalendarCommand) Execute(ctx context.Context) (*CalendarResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	month, _ := domain.ParseMonth(c.Month)
	jobs, err := c.store.JobsInMonth(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs in %s: %w", month, err)
	}
	return &CalendarResult{Month: month, Jobs: jobs}, nil
}

// PlantMonthsResult lists the months in which a plant needs work
type PlantMonthsResult struct {
	PlantID int64
	Months  domain.MonthSet
}

// PlantMonthsCommand derives a plant's months from its jobs
type PlantMonthsCommand struct {
	store   ports.GardenStore
	PlantID int64
}

// NewPlantMonthsCommand creates a new PlantMonthsCommand
func NewPlantMonthsCommand(store ports.GardenStore, plantID int64) *PlantMonthsCommand {
	return &PlantMonthsCommand{store: store, PlantID: plantID}
}

// Validate checks if the plant ID is valid
func (c *PlantMonthsCommand) Validate() error {
	return application.ValidateID("plantID", c.PlantID)
}

// Execute runs the plant months command
func (c *PlantMonthsCommand) Execute(ctx context.Context) (*PlantMonthsResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if _, found, err := c.store.GetPlant(ctx, c.PlantID); err != nil {
		return nil, fmt.Errorf("failed to load plant #%d: %w", c.PlantID, err)
	} else if !found {
		return nil, &application.NotFoundError{Kind: domain.KindPlant, ID: c.PlantID}
	}

	months, err := c.store.MonthsOfPlant(ctx, c.PlantID)
	if err != nil {
		return nil, fmt.Errorf("failed to derive months of plant #%d: %w", c.PlantID, err)
	}
	return &PlantMonthsResult{PlantID: c.PlantID, Months: months}, nil
}
