package sqlite

import (
	"context"
	"time"

	"gardenbook/internal/domain"
	"gardenbook/internal/ports"
)

// Store implements ports.GardenStore. Every method runs in its own scope.
type Store struct {
	db *DB
}

// Ensure Store implements GardenStore
var _ ports.GardenStore = (*Store)(nil)

// NewStore opens the database file at path
func NewStore(path string, opts ...Option) (*Store, error) {
	db, err := Open(path, opts...)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// DB exposes the underlying handle for multi-step scopes
func (st *Store) DB() *DB {
	return st.db
}

// Close closes the database connection
func (st *Store) Close() error {
	return st.db.Close()
}

func inScope[T any](ctx context.Context, d *DB, fn func(*Scope) (T, error)) (T, error) {
	var out T
	err := d.Scope(ctx, func(s *Scope) error {
		var err error
		out, err = fn(s)
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func getOne[T any](ctx context.Context, d *DB, load func(*Scope, *int64) ([]T, error), id int64) (T, bool, error) {
	items, err := inScope(ctx, d, func(s *Scope) ([]T, error) {
		return load(s, &id)
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	item, ok := first(items)
	return item, ok, nil
}

// insert runs fn in a scope and restores the aggregate's previous ID when
// the scope rolls back.
func insert(ctx context.Context, d *DB, id *int64, fn func(*Scope) error) error {
	prev := *id
	if err := d.Scope(ctx, fn); err != nil {
		*id = prev
		return err
	}
	return nil
}

// --- clients ---

// ListClients returns every client with its plants, jobs and months
func (st *Store) ListClients(ctx context.Context) ([]domain.Client, error) {
	return inScope(ctx, st.db, func(s *Scope) ([]domain.Client, error) {
		return s.Clients(ctx, nil)
	})
}

// GetClient returns the client with id; found is false when there is none
func (st *Store) GetClient(ctx context.Context, id int64) (domain.Client, bool, error) {
	return getOne(ctx, st.db, func(s *Scope, id *int64) ([]domain.Client, error) {
		return s.Clients(ctx, id)
	}, id)
}

// InsertClient stores c and its plant links and sets c.ID
func (st *Store) InsertClient(ctx context.Context, c *domain.Client) error {
	return insert(ctx, st.db, &c.ID, func(s *Scope) error {
		return s.InsertClient(ctx, c)
	})
}

// UpdateClient rewrites c and replaces its plant links. found is false,
// and nothing changes, when no client has c.ID.
func (st *Store) UpdateClient(ctx context.Context, c *domain.Client) (bool, error) {
	return inScope(ctx, st.db, func(s *Scope) (bool, error) {
		return s.UpdateClient(ctx, c)
	})
}

// DropClient removes the client's plant links, then the client
func (st *Store) DropClient(ctx context.Context, id int64) (bool, error) {
	return inScope(ctx, st.db, func(s *Scope) (bool, error) {
		return s.DropClient(ctx, id)
	})
}

// --- plants ---

// ListPlants returns every plant with its jobs and months
func (st *Store) ListPlants(ctx context.Context) ([]domain.Plant, error) {
	return inScope(ctx, st.db, func(s *Scope) ([]domain.Plant, error) {
		return s.Plants(ctx, nil)
	})
}

// GetPlant returns the plant with id; found is false when there is none
func (st *Store) GetPlant(ctx context.Context, id int64) (domain.Plant, bool, error) {
	return getOne(ctx, st.db, func(s *Scope, id *int64) ([]domain.Plant, error) {
		return s.Plants(ctx, id)
	}, id)
}

// InsertPlant stores p and its job links and sets p.ID. A duplicate latin
// name fails with domain.ErrConstraint.
func (st *Store) InsertPlant(ctx context.Context, p *domain.Plant) error {
	return insert(ctx, st.db, &p.ID, func(s *Scope) error {
		return s.InsertPlant(ctx, p)
	})
}

// UpdatePlant rewrites p and replaces its job links
func (st *Store) UpdatePlant(ctx context.Context, p *domain.Plant) (bool, error) {
	return inScope(ctx, st.db, func(s *Scope) (bool, error) {
		return s.UpdatePlant(ctx, p)
	})
}

// DropPlant removes the plant's client and job links, then the plant
func (st *Store) DropPlant(ctx context.Context, id int64) (bool, error) {
	return inScope(ctx, st.db, func(s *Scope) (bool, error) {
		return s.DropPlant(ctx, id)
	})
}

// MonthsOfPlant returns the months in which any job of the plant applies
func (st *Store) MonthsOfPlant(ctx context.Context, id int64) (domain.MonthSet, error) {
	return inScope(ctx, st.db, func(s *Scope) (domain.MonthSet, error) {
		return s.MonthsOfPlant(ctx, id)
	})
}

// --- jobs ---

// ListJobs returns every maintenance job with its months
func (st *Store) ListJobs(ctx context.Context) ([]domain.Maintenance, error) {
	return inScope(ctx, st.db, func(s *Scope) ([]domain.Maintenance, error) {
		return s.Jobs(ctx, nil)
	})
}

// GetJob returns the job with id; found is false when there is none
func (st *Store) GetJob(ctx context.Context, id int64) (domain.Maintenance, bool, error) {
	return getOne(ctx, st.db, func(s *Scope, id *int64) ([]domain.Maintenance, error) {
		return s.Jobs(ctx, id)
	}, id)
}

// InsertJob stores m and its months and sets m.ID
func (st *Store) InsertJob(ctx context.Context, m *domain.Maintenance) error {
	return insert(ctx, st.db, &m.ID, func(s *Scope) error {
		return s.InsertJob(ctx, m)
	})
}

// UpdateJob rewrites m and replaces its months
func (st *Store) UpdateJob(ctx context.Context, m *domain.Maintenance) (bool, error) {
	return inScope(ctx, st.db, func(s *Scope) (bool, error) {
		return s.UpdateJob(ctx, m)
	})
}

// DropJob removes the job's plant links and months, then the job
func (st *Store) DropJob(ctx context.Context, id int64) (bool, error) {
	return inScope(ctx, st.db, func(s *Scope) (bool, error) {
		return s.DropJob(ctx, id)
	})
}

// JobsInMonth returns the jobs scheduled in month
func (st *Store) JobsInMonth(ctx context.Context, month time.Month) ([]domain.Maintenance, error) {
	return inScope(ctx, st.db, func(s *Scope) ([]domain.Maintenance, error) {
		return s.JobsInMonth(ctx, month)
	})
}

// --- links ---

// LinkPlantToClient records that the client owns the plant
func (st *Store) LinkPlantToClient(ctx context.Context, clientID, plantID int64) error {
	return st.db.Scope(ctx, func(s *Scope) error {
		return s.LinkPlantToClient(ctx, clientID, plantID)
	})
}

// UnlinkClientPlant removes client-plant links matching the non-nil sides
// and returns how many went
func (st *Store) UnlinkClientPlant(ctx context.Context, clientID, plantID *int64) (int64, error) {
	return inScope(ctx, st.db, func(s *Scope) (int64, error) {
		return s.UnlinkClientPlant(ctx, clientID, plantID)
	})
}

// LinkJobToPlant records that the plant needs the job
func (st *Store) LinkJobToPlant(ctx context.Context, plantID, jobID int64) error {
	return st.db.Scope(ctx, func(s *Scope) error {
		return s.LinkJobToPlant(ctx, plantID, jobID)
	})
}

// UnlinkPlantJob removes plant-job links matching the non-nil sides and
// returns how many went
func (st *Store) UnlinkPlantJob(ctx context.Context, plantID, jobID *int64) (int64, error) {
	return inScope(ctx, st.db, func(s *Scope) (int64, error) {
		return s.UnlinkPlantJob(ctx, plantID, jobID)
	})
}

// ClientsOfPlant returns the owners of the plant
func (st *Store) ClientsOfPlant(ctx context.Context, plantID int64) ([]domain.Client, error) {
	return inScope(ctx, st.db, func(s *Scope) ([]domain.Client, error) {
		return s.ClientsOfPlant(ctx, plantID)
	})
}

// PlantsOfJob returns the plants that need the job
func (st *Store) PlantsOfJob(ctx context.Context, jobID int64) ([]domain.Plant, error) {
	return inScope(ctx, st.db, func(s *Scope) ([]domain.Plant, error) {
		return s.PlantsOfJob(ctx, jobID)
	})
}
