package ports

import (
	"context"
	"time"

	"gardenbook/internal/domain"
)

// GardenStore provides hydrated access to clients, plants and maintenance
// jobs. Every call runs in its own storage scope: it either commits in full
// or leaves storage untouched.
type GardenStore interface {
	// Lifecycle
	Close() error

	// Clients
	ListClients(ctx context.Context) ([]domain.Client, error)
	GetClient(ctx context.Context, id int64) (domain.Client, bool, error)
	InsertClient(ctx context.Context, c *domain.Client) error
	UpdateClient(ctx context.Context, c *domain.Client) (bool, error)
	DropClient(ctx context.Context, id int64) (bool, error)

	// Plants
	ListPlants(ctx context.Context) ([]domain.Plant, error)
	GetPlant(ctx context.Context, id int64) (domain.Plant, bool, error)
	InsertPlant(ctx context.Context, p *domain.Plant) error
	UpdatePlant(ctx context.Context, p *domain.Plant) (bool, error)
	DropPlant(ctx context.Context, id int64) (bool, error)
	MonthsOfPlant(ctx context.Context, id int64) (domain.MonthSet, error)

	// Maintenance jobs
	ListJobs(ctx context.Context) ([]domain.Maintenance, error)
	GetJob(ctx context.Context, id int64) (domain.Maintenance, bool, error)
	InsertJob(ctx context.Context, m *domain.Maintenance) error
	UpdateJob(ctx context.Context, m *domain.Maintenance) (bool, error)
	DropJob(ctx context.Context, id int64) (bool, error)
	JobsInMonth(ctx context.Context, month time.Month) ([]domain.Maintenance, error)

	// Links. A nil side is unspecified; with both sides nil nothing is
	// removed.
	LinkPlantToClient(ctx context.Context, clientID, plantID int64) error
	UnlinkClientPlant(ctx context.Context, clientID, plantID *int64) (int64, error)
	LinkJobToPlant(ctx context.Context, plantID, jobID int64) error
	UnlinkPlantJob(ctx context.Context, plantID, jobID *int64) (int64, error)
	ClientsOfPlant(ctx context.Context, plantID int64) ([]domain.Client, error)
	PlantsOfJob(ctx context.Context, jobID int64) ([]domain.Plant, error)
}
