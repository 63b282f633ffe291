package sqlite

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gardenbook/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := NewStore(filepath.Join(t.TempDir(), "garden.db"), WithLogger(logger))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

type linkCounts struct {
	clientPlant int
	plantJob    int
	jobMonth    int
}

func countLinks(t *testing.T, st *Store) linkCounts {
	t.Helper()
	ctx := context.Background()
	var counts linkCounts
	err := st.DB().Scope(ctx, func(s *Scope) error {
		cp, err := s.ClientPlantLinks(ctx)
		if err != nil {
			return err
		}
		pj, err := s.PlantJobLinks(ctx)
		if err != nil {
			return err
		}
		jm, err := s.JobMonthLinks(ctx)
		if err != nil {
			return err
		}
		counts = linkCounts{len(cp), len(pj), len(jm)}
		return nil
	})
	require.NoError(t, err)
	return counts
}

// seed inserts job "Prune" (March, January), plant "Rose" linked to it, and
// client "Ann" linked to the plant.
func seed(t *testing.T, st *Store) (domain.Client, domain.Plant, domain.Maintenance) {
	t.Helper()
	ctx := context.Background()

	job := domain.Maintenance{Name: "Prune", Description: "Cut back", Months: domain.ParseMonthSet("March", "January")}
	require.NoError(t, st.InsertJob(ctx, &job))

	plant := domain.Plant{Name: "Rose", LatinName: "Rosa", BloomingPeriod: "June", Jobs: domain.RefsOf(job)}
	require.NoError(t, st.InsertPlant(ctx, &plant))

	client := domain.Client{Name: "Ann", Plants: domain.RefIDs[domain.Plant](plant.ID)}
	require.NoError(t, st.InsertClient(ctx, &client))

	return client, plant, job
}

func TestStore_InsertHydrateRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	client, plant, job := seed(t, st)

	assert.NotZero(t, client.ID)
	assert.NotZero(t, plant.ID)
	assert.NotZero(t, job.ID)

	got, found, err := st.GetClient(ctx, client.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Ann", got.Name)
	assert.ElementsMatch(t, []int64{plant.ID}, got.Plants.IDs())

	plants, ok := got.Plants.Items()
	require.True(t, ok)
	require.Len(t, plants, 1)
	assert.Equal(t, "Rose", plants[0].Name)
	assert.Equal(t, "Rosa", plants[0].LatinName)
	assert.Equal(t, "June", plants[0].BloomingPeriod)
	assert.ElementsMatch(t, []int64{job.ID}, plants[0].Jobs.IDs())
	assert.Equal(t, []string{"January", "March"}, plants[0].Months.Names())

	jobs, ok := plants[0].Jobs.Items()
	require.True(t, ok)
	assert.Equal(t, "Prune", jobs[0].Name)
	assert.Equal(t, "Cut back", jobs[0].Description)
}

func TestStore_MonthNormalization(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	job := domain.Maintenance{Name: "Mulch", Months: domain.MonthSet{time.March, time.January, time.March}}
	require.NoError(t, st.InsertJob(ctx, &job))

	got, found, err := st.GetJob(ctx, job.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{"January", "March"}, got.Months.Names())
}

func TestStore_DropLeavesNoLinks(t *testing.T) {
	ctx := context.Background()

	t.Run("client", func(t *testing.T) {
		st := openTestStore(t)
		client, _, _ := seed(t, st)

		found, err := st.DropClient(ctx, client.ID)
		require.NoError(t, err)
		assert.True(t, found)

		_, found, err = st.GetClient(ctx, client.ID)
		require.NoError(t, err)
		assert.False(t, found)
		assert.Equal(t, 0, countLinks(t, st).clientPlant)
	})

	t.Run("plant", func(t *testing.T) {
		st := openTestStore(t)
		_, plant, _ := seed(t, st)

		found, err := st.DropPlant(ctx, plant.ID)
		require.NoError(t, err)
		assert.True(t, found)

		_, found, err = st.GetPlant(ctx, plant.ID)
		require.NoError(t, err)
		assert.False(t, found)
		counts := countLinks(t, st)
		assert.Equal(t, 0, counts.clientPlant)
		assert.Equal(t, 0, counts.plantJob)
	})

	t.Run("job", func(t *testing.T) {
		st := openTestStore(t)
		_, _, job := seed(t, st)

		found, err := st.DropJob(ctx, job.ID)
		require.NoError(t, err)
		assert.True(t, found)

		_, found, err = st.GetJob(ctx, job.ID)
		require.NoError(t, err)
		assert.False(t, found)
		counts := countLinks(t, st)
		assert.Equal(t, 0, counts.plantJob)
		assert.Equal(t, 0, counts.jobMonth)
	})

	t.Run("missing", func(t *testing.T) {
		st := openTestStore(t)
		found, err := st.DropClient(ctx, 404)
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestStore_UpdateReplacesLinks(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	client, plant, job := seed(t, st)

	tulip := domain.Plant{Name: "Tulip", LatinName: "Tulipa"}
	require.NoError(t, st.InsertPlant(ctx, &tulip))
	fern := domain.Plant{Name: "Fern", LatinName: "Polypodiopsida"}
	require.NoError(t, st.InsertPlant(ctx, &fern))

	client.Name = "Ann Smith"
	client.Plants = domain.RefIDs[domain.Plant](tulip.ID, fern.ID, tulip.ID)
	found, err := st.UpdateClient(ctx, &client)
	require.NoError(t, err)
	require.True(t, found)

	got, _, err := st.GetClient(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann Smith", got.Name)
	assert.ElementsMatch(t, []int64{tulip.ID, fern.ID}, got.Plants.IDs())

	// same state again is a no-op beyond delete and reinsert
	found, err = st.UpdateClient(ctx, &client)
	require.NoError(t, err)
	require.True(t, found)
	got, _, err = st.GetClient(ctx, client.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{tulip.ID, fern.ID}, got.Plants.IDs())

	plant.Jobs = domain.RefsOf[domain.Maintenance]()
	found, err = st.UpdatePlant(ctx, &plant)
	require.NoError(t, err)
	require.True(t, found)
	gotPlant, _, err := st.GetPlant(ctx, plant.ID)
	require.NoError(t, err)
	assert.Zero(t, gotPlant.Jobs.Len())
	assert.Empty(t, gotPlant.Months)

	job.Months = domain.ParseMonthSet("December")
	job.Description = "Winter cut"
	found, err = st.UpdateJob(ctx, &job)
	require.NoError(t, err)
	require.True(t, found)
	gotJob, _, err := st.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"December"}, gotJob.Months.Names())
	assert.Equal(t, "Winter cut", gotJob.Description)
}

func TestStore_UpdateMissingChangesNothing(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	_, plant, _ := seed(t, st)

	ghost := domain.Client{ID: 999, Name: "Ghost", Plants: domain.RefIDs[domain.Plant](plant.ID)}
	found, err := st.UpdateClient(ctx, &ghost)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 1, countLinks(t, st).clientPlant)
}

func TestStore_LatinNameUnique(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	_, plant, job := seed(t, st)

	dup := domain.Plant{Name: "Other rose", LatinName: "Rosa", Jobs: domain.RefIDs[domain.Maintenance](job.ID)}
	err := st.InsertPlant(ctx, &dup)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConstraint), "expected constraint error, got %v", err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest), "expected bad request, got %v", err)
	assert.Zero(t, dup.ID)

	plants, err := st.ListPlants(ctx)
	require.NoError(t, err)
	require.Len(t, plants, 1)
	assert.Equal(t, plant.ID, plants[0].ID)
	assert.ElementsMatch(t, []int64{job.ID}, plants[0].Jobs.IDs())
	assert.Equal(t, 1, countLinks(t, st).plantJob)
}

func TestStore_LinkConstraints(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	client, plant, _ := seed(t, st)

	t.Run("duplicate pair", func(t *testing.T) {
		err := st.LinkPlantToClient(ctx, client.ID, plant.ID)
		assert.ErrorIs(t, err, domain.ErrConstraint)
	})

	t.Run("missing plant", func(t *testing.T) {
		err := st.LinkPlantToClient(ctx, client.ID, 12345)
		assert.ErrorIs(t, err, domain.ErrConstraint)
	})

	t.Run("missing job", func(t *testing.T) {
		err := st.LinkJobToPlant(ctx, plant.ID, 12345)
		assert.ErrorIs(t, err, domain.ErrConstraint)
	})

	t.Run("insert with missing link rolls back root row", func(t *testing.T) {
		c := domain.Client{Name: "Bob", Plants: domain.RefIDs[domain.Plant](12345)}
		err := st.InsertClient(ctx, &c)
		assert.ErrorIs(t, err, domain.ErrConstraint)
		assert.Zero(t, c.ID)

		clients, err := st.ListClients(ctx)
		require.NoError(t, err)
		assert.Len(t, clients, 1)
	})
}

func TestStore_UnlinkWithoutSidesIsNoOp(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	seed(t, st)
	before := countLinks(t, st)

	n, err := st.UnlinkClientPlant(ctx, nil, nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = st.UnlinkPlantJob(ctx, nil, nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	err = st.DB().Scope(ctx, func(s *Scope) error {
		n, err := s.UnlinkJobMonth(ctx, nil, nil)
		assert.Zero(t, n)
		return err
	})
	require.NoError(t, err)

	assert.Equal(t, before, countLinks(t, st))
}

func TestStore_UnlinkFilters(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	client, plant, job := seed(t, st)

	other := domain.Client{Name: "Bob", Plants: domain.RefIDs[domain.Plant](plant.ID)}
	require.NoError(t, st.InsertClient(ctx, &other))

	n, err := st.UnlinkClientPlant(ctx, &client.ID, &plant.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = st.UnlinkClientPlant(ctx, nil, &plant.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = st.UnlinkPlantJob(ctx, nil, &job.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	march := time.March
	err = st.DB().Scope(ctx, func(s *Scope) error {
		n, err := s.UnlinkJobMonth(ctx, &job.ID, &march)
		assert.Equal(t, int64(1), n)
		return err
	})
	require.NoError(t, err)

	got, _, err := st.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"January"}, got.Months.Names())
}

func TestStore_ZeroIDIsAFilterValue(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	_, plant, _ := seed(t, st)

	_, err := st.DB().Exec(ctx, `INSERT INTO clients (cid, name) VALUES (0, 'Zero')`)
	require.NoError(t, err)
	require.NoError(t, st.LinkPlantToClient(ctx, 0, plant.ID))
	require.Equal(t, 2, countLinks(t, st).clientPlant)

	zero := int64(0)
	n, err := st.UnlinkClientPlant(ctx, &zero, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	owners, err := st.ClientsOfPlant(ctx, plant.ID)
	require.NoError(t, err)
	require.Len(t, owners, 1)
	assert.Equal(t, "Ann", owners[0].Name)
}

func TestStore_AnnAndRoseScenario(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	ann := domain.Client{Name: "Ann"}
	require.NoError(t, st.InsertClient(ctx, &ann))

	rose := domain.Plant{Name: "Rose", LatinName: "Rosa"}
	require.NoError(t, st.InsertPlant(ctx, &rose))

	ann.Plants = domain.RefIDs[domain.Plant](rose.ID)
	found, err := st.UpdateClient(ctx, &ann)
	require.NoError(t, err)
	require.True(t, found)

	got, _, err := st.GetClient(ctx, ann.ID)
	require.NoError(t, err)
	plants, _ := got.Plants.Items()
	require.Len(t, plants, 1)
	assert.Equal(t, "Rose", plants[0].Name)

	found, err = st.DropPlant(ctx, rose.ID)
	require.NoError(t, err)
	require.True(t, found)

	got, _, err = st.GetClient(ctx, ann.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Plants.Len())
}

func TestStore_ReverseLookups(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	client, plant, job := seed(t, st)

	owners, err := st.ClientsOfPlant(ctx, plant.ID)
	require.NoError(t, err)
	require.Len(t, owners, 1)
	assert.Equal(t, client.ID, owners[0].ID)
	assert.ElementsMatch(t, []int64{plant.ID}, owners[0].Plants.IDs())

	plants, err := st.PlantsOfJob(ctx, job.ID)
	require.NoError(t, err)
	require.Len(t, plants, 1)
	assert.Equal(t, "Rose", plants[0].Name)

	inJanuary, err := st.JobsInMonth(ctx, time.January)
	require.NoError(t, err)
	require.Len(t, inJanuary, 1)
	assert.Equal(t, job.ID, inJanuary[0].ID)

	inJuly, err := st.JobsInMonth(ctx, time.July)
	require.NoError(t, err)
	assert.Empty(t, inJuly)

	months, err := st.MonthsOfPlant(ctx, plant.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"January", "March"}, months.Names())
}

func TestScope_RollsBackOnError(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := st.DB().Scope(ctx, func(s *Scope) error {
		c := domain.Client{Name: "Temp"}
		if err := s.InsertClient(ctx, &c); err != nil {
			return err
		}
		return boom
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	var scopeErr *ScopeError
	assert.True(t, errors.As(err, &scopeErr))

	clients, err := st.ListClients(ctx)
	require.NoError(t, err)
	assert.Empty(t, clients)
}

func TestScope_RollsBackOnPanic(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = st.DB().Scope(ctx, func(s *Scope) error {
			c := domain.Client{Name: "Temp"}
			if err := s.InsertClient(ctx, &c); err != nil {
				return err
			}
			panic("boom")
		})
	})

	clients, err := st.ListClients(ctx)
	require.NoError(t, err)
	assert.Empty(t, clients)
}

func TestScope_InvalidMonthFails(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	_, _, job := seed(t, st)

	err := st.DB().Scope(ctx, func(s *Scope) error {
		return s.LinkMonthToJob(ctx, job.ID, 13)
	})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestOpen_SchemaIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "garden.db")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	first, err := NewStore(path, WithLogger(logger))
	require.NoError(t, err)
	c := domain.Client{Name: "Ann"}
	require.NoError(t, first.InsertClient(context.Background(), &c))
	require.NoError(t, first.Close())

	second, err := NewStore(path, WithLogger(logger))
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	clients, err := second.ListClients(context.Background())
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "Ann", clients[0].Name)
	assert.Equal(t, path, second.DB().Path())
}

func TestOpen_FileUsesWAL(t *testing.T) {
	st := openTestStore(t)

	var mode string
	require.NoError(t, st.DB().db.QueryRowContext(context.Background(), "PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)

	var fk int
	require.NoError(t, st.DB().db.QueryRowContext(context.Background(), "PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestDSN(t *testing.T) {
	assert.Equal(t, ":memory:"+pragmas, dsn(":memory:"))
	assert.Contains(t, dsn("/tmp/garden.db"), "_pragma=journal_mode(WAL)")
}
