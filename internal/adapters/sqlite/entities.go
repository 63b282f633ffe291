package sqlite

import (
	"context"
	"fmt"
	"slices"

	"gardenbook/internal/domain"
)

// InsertClient inserts the client row and its plant links, then sets c.ID.
func (s *Scope) InsertClient(ctx context.Context, c *domain.Client) error {
	res, err := s.perform(ctx, `INSERT INTO clients (name) VALUES (?)`, c.Name)
	if err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	for _, pid := range uniqueIDs(c.Plants.IDs()) {
		if err := s.LinkPlantToClient(ctx, id, pid); err != nil {
			return err
		}
	}
	c.ID = id
	return nil
}

// UpdateClient writes the client's name and replaces all of its plant links
// with c.Plants. It reports false, and changes nothing, when no client has
// c.ID.
func (s *Scope) UpdateClient(ctx context.Context, c *domain.Client) (bool, error) {
	res, err := s.perform(ctx, `UPDATE clients SET name = ? WHERE cid = ?`, c.Name, c.ID)
	if err != nil {
		return false, fmt.Errorf("update client %d: %w", c.ID, err)
	}
	if n, err := res.RowsAffected(); err != nil || n == 0 {
		return false, err
	}

	if _, err := s.UnlinkClientPlant(ctx, &c.ID, nil); err != nil {
		return false, err
	}
	for _, pid := range uniqueIDs(c.Plants.IDs()) {
		if err := s.LinkPlantToClient(ctx, c.ID, pid); err != nil {
			return false, err
		}
	}
	return true, nil
}

// DropClient removes the client's plant links and then the client.
func (s *Scope) DropClient(ctx context.Context, id int64) (bool, error) {
	if _, err := s.UnlinkClientPlant(ctx, &id, nil); err != nil {
		return false, err
	}
	return s.deleteRoot(ctx, "clients", "cid", id)
}

// InsertPlant inserts the plant row and its job links, then sets p.ID.
// A duplicate latin name fails with domain.ErrConstraint.
func (s *Scope) InsertPlant(ctx context.Context, p *domain.Plant) error {
	res, err := s.perform(ctx,
		`INSERT INTO plants (name, latin_name, blooming_period) VALUES (?, ?, ?)`,
		p.Name, p.LatinName, p.BloomingPeriod)
	if err != nil {
		return fmt.Errorf("insert plant: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert plant: %w", err)
	}
	for _, mid := range uniqueIDs(p.Jobs.IDs()) {
		if err := s.LinkJobToPlant(ctx, id, mid); err != nil {
			return err
		}
	}
	p.ID = id
	return nil
}

// UpdatePlant writes the plant's fields and replaces all of its job links
// with p.Jobs. It reports false, and changes nothing, when no plant has p.ID.
func (s *Scope) UpdatePlant(ctx context.Context, p *domain.Plant) (bool, error) {
	res, err := s.perform(ctx,
		`UPDATE plants SET name = ?, latin_name = ?, blooming_period = ? WHERE pid = ?`,
		p.Name, p.LatinName, p.BloomingPeriod, p.ID)
	if err != nil {
		return false, fmt.Errorf("update plant %d: %w", p.ID, err)
	}
	if n, err := res.RowsAffected(); err != nil || n == 0 {
		return false, err
	}

	if _, err := s.UnlinkPlantJob(ctx, &p.ID, nil); err != nil {
		return false, err
	}
	for _, mid := range uniqueIDs(p.Jobs.IDs()) {
		if err := s.LinkJobToPlant(ctx, p.ID, mid); err != nil {
			return false, err
		}
	}
	return true, nil
}

// DropPlant removes the plant's client and job links and then the plant.
func (s *Scope) DropPlant(ctx context.Context, id int64) (bool, error) {
	if _, err := s.UnlinkClientPlant(ctx, nil, &id); err != nil {
		return false, err
	}
	if _, err := s.UnlinkPlantJob(ctx, &id, nil); err != nil {
		return false, err
	}
	return s.deleteRoot(ctx, "plants", "pid", id)
}

// InsertJob inserts the job row and one months row per month, then sets m.ID.
func (s *Scope) InsertJob(ctx context.Context, m *domain.Maintenance) error {
	res, err := s.perform(ctx, `INSERT INTO jobs (name, description) VALUES (?, ?)`, m.Name, m.Description)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	months := domain.NewMonthSet(m.Months...)
	for _, month := range months {
		if err := s.LinkMonthToJob(ctx, id, month); err != nil {
			return err
		}
	}
	m.ID = id
	m.Months = months
	return nil
}

// UpdateJob writes the job's fields and replaces its months with m.Months.
// It reports false, and changes nothing, when no job has m.ID.
func (s *Scope) UpdateJob(ctx context.Context, m *domain.Maintenance) (bool, error) {
	res, err := s.perform(ctx, `UPDATE jobs SET name = ?, description = ? WHERE mid = ?`,
		m.Name, m.Description, m.ID)
	if err != nil {
		return false, fmt.Errorf("update job %d: %w", m.ID, err)
	}
	if n, err := res.RowsAffected(); err != nil || n == 0 {
		return false, err
	}

	if _, err := s.UnlinkJobMonth(ctx, &m.ID, nil); err != nil {
		return false, err
	}
	months := domain.NewMonthSet(m.Months...)
	for _, month := range months {
		if err := s.LinkMonthToJob(ctx, m.ID, month); err != nil {
			return false, err
		}
	}
	m.Months = months
	return true, nil
}

// DropJob removes the job's plant links and months and then the job.
func (s *Scope) DropJob(ctx context.Context, id int64) (bool, error) {
	if _, err := s.UnlinkPlantJob(ctx, nil, &id); err != nil {
		return false, err
	}
	if _, err := s.UnlinkJobMonth(ctx, &id, nil); err != nil {
		return false, err
	}
	return s.deleteRoot(ctx, "jobs", "mid", id)
}

func (s *Scope) deleteRoot(ctx context.Context, table, key string, id int64) (bool, error) {
	res, err := s.perform(ctx, "DELETE FROM "+table+" WHERE "+key+" = ?", id)
	if err != nil {
		return false, fmt.Errorf("delete from %s %d: %w", table, id, err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// uniqueIDs drops repeated IDs, keeping first occurrences in order.
func uniqueIDs(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
