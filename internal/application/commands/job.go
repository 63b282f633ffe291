package commands

import (
	"context"
	"fmt"
	"strings"

	"gardenbook/internal/application"
	"gardenbook/internal/domain"
	"gardenbook/internal/ports"
)

// JobResult contains the result of saving a maintenance job
type JobResult struct {
	Job     domain.Maintenance
	Message string
}

// CreateJobCommand inserts a maintenance job with its months
type CreateJobCommand struct {
	store ports.GardenStore
	Job   domain.Maintenance
}

// NewCreateJobCommand creates a new CreateJobCommand
func NewCreateJobCommand(store ports.GardenStore, job domain.Maintenance) *CreateJobCommand {
	return &CreateJobCommand{store: store, Job: job}
}

// Validate checks if the create operation is valid
func (c *CreateJobCommand) Validate() error {
	return application.ValidateRequired("name", c.Job.Name)
}

// Execute runs the create job command
func (c *CreateJobCommand) Execute(ctx context.Context) (*JobResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	job := c.Job
	job.ID = 0
	if err := c.store.InsertJob(ctx, &job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	return &JobResult{
		Job:     job,
		Message: fmt.Sprintf("Created job: #%d %s [%s]", job.ID, job.Name, strings.Join(job.Months.Names(), ", ")),
	}, nil
}

// UpdateJobCommand rewrites a maintenance job and replaces its months
type UpdateJobCommand struct {
	store ports.GardenStore
	Job   domain.Maintenance
}

// NewUpdateJobCommand creates a new UpdateJobCommand
func NewUpdateJobCommand(store ports.GardenStore, job domain.Maintenance) *UpdateJobCommand {
	return &UpdateJobCommand{store: store, Job: job}
}

// Validate checks if the update operation is valid
func (c *UpdateJobCommand) Validate() error {
	if err := application.ValidateID("id", c.Job.ID); err != nil {
		return err
	}
	return application.ValidateRequired("name", c.Job.Name)
}

// Execute runs the update job command
func (c *UpdateJobCommand) Execute(ctx context.Context) (*JobResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	job := c.Job
	found, err := c.store.UpdateJob(ctx, &job)
	if err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	if !found {
		return nil, &application.NotFoundError{Kind: domain.KindJob, ID: job.ID}
	}

	return &JobResult{
		Job:     job,
		Message: fmt.Sprintf("Updated job: #%d %s [%s]", job.ID, job.Name, strings.Join(job.Months.Names(), ", ")),
	}, nil
}
