package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gardenbook/internal/domain"
)

// linkTable describes a junction table with a composite key (left, right).
type linkTable struct {
	table string
	left  string
	right string
}

var (
	clientPlant = linkTable{table: "client_plant_junction", left: "cid", right: "pid"}
	plantJob    = linkTable{table: "plant_job_junction", left: "pid", right: "mid"}
	jobMonth    = linkTable{table: "months", left: "mid", right: "month"}
)

func (lt linkTable) link(ctx context.Context, s *Scope, left, right any) error {
	q := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES (?, ?)", lt.table, lt.left, lt.right)
	if _, err := s.perform(ctx, q, left, right); err != nil {
		return fmt.Errorf("link %s %v-%v: %w", lt.table, left, right, err)
	}
	return nil
}

// unlink deletes the pair when both sides are given, every row of one side
// when only that side is given, and nothing when neither is.
func unlink[L, R any](ctx context.Context, s *Scope, lt linkTable, left *L, right *R) (int64, error) {
	var (
		res sql.Result
		err error
	)
	switch {
	case left != nil && right != nil:
		q := fmt.Sprintf("DELETE FROM %s WHERE %s = ? AND %s = ?", lt.table, lt.left, lt.right)
		res, err = s.perform(ctx, q, *left, *right)
	case left != nil:
		q := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", lt.table, lt.left)
		res, err = s.perform(ctx, q, *left)
	case right != nil:
		q := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", lt.table, lt.right)
		res, err = s.perform(ctx, q, *right)
	default:
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("unlink %s: %w", lt.table, err)
	}
	return res.RowsAffected()
}

// ClientPlantLink is a raw client_plant_junction row
type ClientPlantLink struct {
	ClientID int64
	PlantID  int64
}

// PlantJobLink is a raw plant_job_junction row
type PlantJobLink struct {
	PlantID int64
	JobID   int64
}

// JobMonthLink is a raw months row
type JobMonthLink struct {
	JobID int64
	Month time.Month
}

// --- client-plant ---

// LinkPlantToClient records that the client owns the plant
func (s *Scope) LinkPlantToClient(ctx context.Context, clientID, plantID int64) error {
	return clientPlant.link(ctx, s, clientID, plantID)
}

// UnlinkClientPlant removes client-plant links; nil means unspecified.
func (s *Scope) UnlinkClientPlant(ctx context.Context, clientID, plantID *int64) (int64, error) {
	return unlink(ctx, s, clientPlant, clientID, plantID)
}

// ClientPlantLinks returns every client-plant row
func (s *Scope) ClientPlantLinks(ctx context.Context) ([]ClientPlantLink, error) {
	return collect(ctx, s, func(rows *sql.Rows) (ClientPlantLink, error) {
		var l ClientPlantLink
		err := rows.Scan(&l.ClientID, &l.PlantID)
		return l, err
	}, `SELECT cid, pid FROM client_plant_junction ORDER BY cid, pid`)
}

// PlantsOfClient returns the client's plants, hydrated with their jobs
func (s *Scope) PlantsOfClient(ctx context.Context, clientID int64) ([]domain.Plant, error) {
	plants, err := collect(ctx, s, scanPlant, `
		SELECT plants.pid, plants.name, plants.latin_name, plants.blooming_period
		FROM client_plant_junction
		INNER JOIN plants ON plants.pid = client_plant_junction.pid
		WHERE client_plant_junction.cid = ?
		ORDER BY plants.pid
	`, clientID)
	if err != nil {
		return nil, fmt.Errorf("select plants of client %d: %w", clientID, err)
	}
	return s.hydratePlants(ctx, plants)
}

// ClientsOfPlant returns the owners of a plant, hydrated with their plants
func (s *Scope) ClientsOfPlant(ctx context.Context, plantID int64) ([]domain.Client, error) {
	clients, err := collect(ctx, s, scanClient, `
		SELECT clients.cid, clients.name
		FROM client_plant_junction
		INNER JOIN clients ON clients.cid = client_plant_junction.cid
		WHERE client_plant_junction.pid = ?
		ORDER BY clients.cid
	`, plantID)
	if err != nil {
		return nil, fmt.Errorf("select clients of plant %d: %w", plantID, err)
	}
	return s.hydrateClients(ctx, clients)
}

// --- plant-job ---

// LinkJobToPlant records that the plant needs the job
func (s *Scope) LinkJobToPlant(ctx context.Context, plantID, jobID int64) error {
	return plantJob.link(ctx, s, plantID, jobID)
}

// UnlinkPlantJob removes plant-job links; nil means unspecified.
func (s *Scope) UnlinkPlantJob(ctx context.Context, plantID, jobID *int64) (int64, error) {
	return unlink(ctx, s, plantJob, plantID, jobID)
}

// PlantJobLinks returns every plant-job row
func (s *Scope) PlantJobLinks(ctx context.Context) ([]PlantJobLink, error) {
	return collect(ctx, s, func(rows *sql.Rows) (PlantJobLink, error) {
		var l PlantJobLink
		err := rows.Scan(&l.PlantID, &l.JobID)
		return l, err
	}, `SELECT pid, mid FROM plant_job_junction ORDER BY pid, mid`)
}

// JobsOfPlant returns the plant's jobs, hydrated with their months
func (s *Scope) JobsOfPlant(ctx context.Context, plantID int64) ([]domain.Maintenance, error) {
	jobs, err := collect(ctx, s, scanJob, `
		SELECT jobs.mid, jobs.name, jobs.description
		FROM plant_job_junction
		INNER JOIN jobs ON jobs.mid = plant_job_junction.mid
		WHERE plant_job_junction.pid = ?
		ORDER BY jobs.mid
	`, plantID)
	if err != nil {
		return nil, fmt.Errorf("select jobs of plant %d: %w", plantID, err)
	}
	return s.hydrateJobs(ctx, jobs)
}

// PlantsOfJob returns the plants needing a job, hydrated with their jobs
func (s *Scope) PlantsOfJob(ctx context.Context, jobID int64) ([]domain.Plant, error) {
	plants, err := collect(ctx, s, scanPlant, `
		SELECT plants.pid, plants.name, plants.latin_name, plants.blooming_period
		FROM plant_job_junction
		INNER JOIN plants ON plants.pid = plant_job_junction.pid
		WHERE plant_job_junction.mid = ?
		ORDER BY plants.pid
	`, jobID)
	if err != nil {
		return nil, fmt.Errorf("select plants of job %d: %w", jobID, err)
	}
	return s.hydratePlants(ctx, plants)
}

// --- job-month ---

// LinkMonthToJob records that the job applies in month
func (s *Scope) LinkMonthToJob(ctx context.Context, jobID int64, month time.Month) error {
	if month < time.January || month > time.December {
		return fmt.Errorf("link months %d: invalid month %d", jobID, month)
	}
	return jobMonth.link(ctx, s, jobID, month.String())
}

// UnlinkJobMonth removes job-month links; nil means unspecified.
func (s *Scope) UnlinkJobMonth(ctx context.Context, jobID *int64, month *time.Month) (int64, error) {
	var name *string
	if month != nil {
		n := month.String()
		name = &n
	}
	return unlink(ctx, s, jobMonth, jobID, name)
}

// JobMonthLinks returns every job-month row. Rows whose month text is not a
// canonical month name are skipped.
func (s *Scope) JobMonthLinks(ctx context.Context) ([]JobMonthLink, error) {
	type raw struct {
		jobID int64
		month string
	}
	rows, err := collect(ctx, s, func(rows *sql.Rows) (raw, error) {
		var r raw
		err := rows.Scan(&r.jobID, &r.month)
		return r, err
	}, `SELECT mid, month FROM months ORDER BY mid`)
	if err != nil {
		return nil, err
	}

	links := make([]JobMonthLink, 0, len(rows))
	for _, r := range rows {
		if m, ok := domain.ParseMonth(r.month); ok {
			links = append(links, JobMonthLink{JobID: r.jobID, Month: m})
		}
	}
	return links, nil
}

// MonthsOfJob returns the job's months in calendar order
func (s *Scope) MonthsOfJob(ctx context.Context, jobID int64) (domain.MonthSet, error) {
	names, err := collect(ctx, s, scanString, `SELECT month FROM months WHERE mid = ?`, jobID)
	if err != nil {
		return nil, fmt.Errorf("select months of job %d: %w", jobID, err)
	}
	return domain.ParseMonthSet(names...), nil
}

// JobsInMonth returns the jobs that apply in month, hydrated with their months
func (s *Scope) JobsInMonth(ctx context.Context, month time.Month) ([]domain.Maintenance, error) {
	jobs, err := collect(ctx, s, scanJob, `
		SELECT jobs.mid, jobs.name, jobs.description
		FROM months
		INNER JOIN jobs ON jobs.mid = months.mid
		WHERE months.month = ?
		ORDER BY jobs.mid
	`, month.String())
	if err != nil {
		return nil, fmt.Errorf("select jobs in %s: %w", month, err)
	}
	return s.hydrateJobs(ctx, jobs)
}

// MonthsOfPlant returns the distinct months of all jobs linked to the plant
func (s *Scope) MonthsOfPlant(ctx context.Context, plantID int64) (domain.MonthSet, error) {
	names, err := collect(ctx, s, scanString, `
		SELECT DISTINCT months.month
		FROM plant_job_junction
		INNER JOIN months ON months.mid = plant_job_junction.mid
		WHERE plant_job_junction.pid = ?
	`, plantID)
	if err != nil {
		return nil, fmt.Errorf("select months of plant %d: %w", plantID, err)
	}
	return domain.ParseMonthSet(names...), nil
}
