package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"gardenbook/internal/domain"
)

// Hydration goes one way down the graph: client -> plants -> jobs -> months.
// A plant never loads the clients that own it, so the recursion ends.

func scanClient(rows *sql.Rows) (domain.Client, error) {
	var c domain.Client
	err := rows.Scan(&c.ID, &c.Name)
	return c, err
}

func scanPlant(rows *sql.Rows) (domain.Plant, error) {
	var (
		p                           domain.Plant
		name, latin, bloomingPeriod sql.NullString
	)
	if err := rows.Scan(&p.ID, &name, &latin, &bloomingPeriod); err != nil {
		return p, err
	}
	p.Name = name.String
	p.LatinName = latin.String
	p.BloomingPeriod = bloomingPeriod.String
	return p, nil
}

func scanJob(rows *sql.Rows) (domain.Maintenance, error) {
	var (
		m                 domain.Maintenance
		name, description sql.NullString
	)
	if err := rows.Scan(&m.ID, &name, &description); err != nil {
		return m, err
	}
	m.Name = name.String
	m.Description = description.String
	return m, nil
}

func scanString(rows *sql.Rows) (string, error) {
	var s sql.NullString
	err := rows.Scan(&s)
	return s.String, err
}

func (s *Scope) hydrateClients(ctx context.Context, clients []domain.Client) ([]domain.Client, error) {
	for i := range clients {
		plants, err := s.PlantsOfClient(ctx, clients[i].ID)
		if err != nil {
			return nil, err
		}
		clients[i].Plants = domain.RefsOf(plants...)
	}
	return clients, nil
}

func (s *Scope) hydratePlants(ctx context.Context, plants []domain.Plant) ([]domain.Plant, error) {
	for i := range plants {
		jobs, err := s.JobsOfPlant(ctx, plants[i].ID)
		if err != nil {
			return nil, err
		}
		months, err := s.MonthsOfPlant(ctx, plants[i].ID)
		if err != nil {
			return nil, err
		}
		plants[i].Jobs = domain.RefsOf(jobs...)
		plants[i].Months = months
	}
	return plants, nil
}

func (s *Scope) hydrateJobs(ctx context.Context, jobs []domain.Maintenance) ([]domain.Maintenance, error) {
	for i := range jobs {
		months, err := s.MonthsOfJob(ctx, jobs[i].ID)
		if err != nil {
			return nil, err
		}
		jobs[i].Months = months
	}
	return jobs, nil
}

// Clients loads every client, or only the one with id when id is non-nil.
func (s *Scope) Clients(ctx context.Context, id *int64) ([]domain.Client, error) {
	query, args := selectRoot("SELECT cid, name FROM clients", "cid", id)
	clients, err := collect(ctx, s, scanClient, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select clients: %w", err)
	}
	return s.hydrateClients(ctx, clients)
}

// Plants loads every plant, or only the one with id when id is non-nil.
func (s *Scope) Plants(ctx context.Context, id *int64) ([]domain.Plant, error) {
	query, args := selectRoot("SELECT pid, name, latin_name, blooming_period FROM plants", "pid", id)
	plants, err := collect(ctx, s, scanPlant, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select plants: %w", err)
	}
	return s.hydratePlants(ctx, plants)
}

// Jobs loads every job, or only the one with id when id is non-nil.
func (s *Scope) Jobs(ctx context.Context, id *int64) ([]domain.Maintenance, error) {
	query, args := selectRoot("SELECT mid, name, description FROM jobs", "mid", id)
	jobs, err := collect(ctx, s, scanJob, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select jobs: %w", err)
	}
	return s.hydrateJobs(ctx, jobs)
}

func selectRoot(base, key string, id *int64) (string, []any) {
	if id != nil {
		return base + " WHERE " + key + " = ?", []any{*id}
	}
	return base + " ORDER BY " + key, nil
}

// first returns the single element of a keyed lookup.
func first[T any](items []T) (T, bool) {
	var zero T
	if len(items) == 0 {
		return zero, false
	}
	return items[0], true
}
