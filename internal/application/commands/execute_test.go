package commands

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

	"gardenbook/internal/adapters/sqlite"
	"gardenbook/internal/application"
	"gardenbook/internal/domain"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "garden.db"), sqlite.WithLogger(logger))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestCreateAndShow(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	job, err := NewCreateJobCommand(st, domain.Maintenance{
		ID:     99,
		Name:   "Prune",
		Months: domain.NewMonthSet(time.March, time.January),
	}).Execute(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, int64(99), job.Job.ID, "preset ID is ignored on create")
	assert.Contains(t, job.Message, "[January, March]")

	plant, err := NewCreatePlantCommand(st, domain.Plant{
		Name:      "Rose",
		LatinName: "Rosa",
		Jobs:      domain.RefIDs[domain.Maintenance](job.Job.ID),
	}).Execute(ctx)
	require.NoError(t, err)

	client, err := NewCreateClientCommand(st, domain.Client{
		Name:   "Ann",
		Plants: domain.RefIDs[domain.Plant](plant.Plant.ID),
	}).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Created client: #1 Ann", client.Message)

	shown, err := NewShowCommand(st, domain.KindClient, client.Client.ID).Execute(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, shown.Count())

	out := shown.Render()
	assert.Contains(t, out, "#1 Ann")
	assert.Contains(t, out, "Rose (Rosa)")
	assert.Contains(t, out, "Prune")
	assert.Contains(t, out, "March")
}

func TestShowMissing(t *testing.T) {
	_, err := NewShowCommand(newStore(t), domain.KindPlant, 7).Execute(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, application.ErrNotFound))
	assert.Equal(t, "Plant #7 not found", err.Error())
}

func TestUpdateMissing(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	_, err := NewUpdateClientCommand(st, domain.Client{ID: 5, Name: "Bob"}).Execute(ctx)
	assert.ErrorIs(t, err, application.ErrNotFound)

	list, err := NewListCommand(st, domain.KindClient).Execute(ctx)
	require.NoError(t, err)
	assert.Zero(t, list.Count(), "update of a missing client must not insert")
}

func TestUpdateReplacesLinks(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	a, err := NewCreatePlantCommand(st, domain.Plant{Name: "Rose", LatinName: "Rosa"}).Execute(ctx)
	require.NoError(t, err)
	b, err := NewCreatePlantCommand(st, domain.Plant{Name: "Tulip", LatinName: "Tulipa"}).Execute(ctx)
	require.NoError(t, err)
	c, err := NewCreateClientCommand(st, domain.Client{
		Name:   "Ann",
		Plants: domain.RefIDs[domain.Plant](a.Plant.ID),
	}).Execute(ctx)
	require.NoError(t, err)

	updated := c.Client
	updated.Plants = domain.RefIDs[domain.Plant](b.Plant.ID)
	res, err := NewUpdateClientCommand(st, updated).Execute(ctx)
	require.NoError(t, err)
	assert.Contains(t, res.Message, "(1 plants)")

	got, found, err := st.GetClient(ctx, c.Client.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []int64{b.Plant.ID}, got.Plants.IDs())
}

func TestDuplicateLatinName(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	_, err := NewCreatePlantCommand(st, domain.Plant{Name: "Rose", LatinName: "Rosa"}).Execute(ctx)
	require.NoError(t, err)
	_, err = NewCreatePlantCommand(st, domain.Plant{Name: "Dog rose", LatinName: "Rosa"}).Execute(ctx)
	assert.ErrorIs(t, err, application.ErrConstraint)
	assert.ErrorIs(t, err, application.ErrBadRequest)
}

func TestDeleteCommand_Execute(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	p, err := NewCreatePlantCommand(st, domain.Plant{Name: "Rose", LatinName: "Rosa"}).Execute(ctx)
	require.NoError(t, err)

	res, err := NewDeleteCommand(st, domain.KindPlant, p.Plant.ID).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Deleted Plant #1", res.Message)

	_, err = NewDeleteCommand(st, domain.KindPlant, p.Plant.ID).Execute(ctx)
	assert.ErrorIs(t, err, application.ErrNotFound)
}

func TestLinkAndUnlink(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	p, err := NewCreatePlantCommand(st, domain.Plant{Name: "Rose", LatinName: "Rosa"}).Execute(ctx)
	require.NoError(t, err)
	c, err := NewCreateClientCommand(st, domain.Client{Name: "Ann"}).Execute(ctx)
	require.NoError(t, err)

	_, err = NewLinkCommand(st, RelationClientPlant, c.Client.ID, p.Plant.ID).Execute(ctx)
	require.NoError(t, err)

	_, err = NewLinkCommand(st, RelationClientPlant, c.Client.ID, p.Plant.ID).Execute(ctx)
	assert.ErrorIs(t, err, application.ErrConstraint, "duplicate pair")

	_, err = NewLinkCommand(st, RelationClientPlant, c.Client.ID, 42).Execute(ctx)
	assert.ErrorIs(t, err, application.ErrConstraint, "missing plant")

	none, err := NewUnlinkCommand(st, RelationClientPlant, nil, nil).Execute(ctx)
	require.NoError(t, err)
	assert.Zero(t, none.Removed)

	clientID := c.Client.ID
	res, err := NewUnlinkCommand(st, RelationClientPlant, &clientID, nil).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Removed)
	assert.Equal(t, "Unlinked client-plant: 1 removed", res.Message)
}

func TestReversedRelationNamesAreRejected(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	ann, err := NewCreateClientCommand(st, domain.Client{Name: "Ann"}).Execute(ctx)
	require.NoError(t, err)
	p, err := NewCreatePlantCommand(st, domain.Plant{Name: "Rose", LatinName: "Rosa"}).Execute(ctx)
	require.NoError(t, err)
	bob, err := NewCreateClientCommand(st, domain.Client{Name: "Bob", Plants: domain.RefIDs[domain.Plant](p.Plant.ID)}).Execute(ctx)
	require.NoError(t, err)

	_, err = NewLinkCommand(st, ParseRelation("plant-client"), p.Plant.ID, ann.Client.ID).Execute(ctx)
	var verr *application.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "relation", verr.Field)

	plantID := p.Plant.ID
	_, err = NewUnlinkCommand(st, ParseRelation("plant-client"), &plantID, nil).Execute(ctx)
	require.ErrorAs(t, err, &verr)

	// Bob keeps the plant and Ann gained nothing
	got, found, err := st.GetClient(ctx, bob.Client.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []int64{p.Plant.ID}, got.Plants.IDs())

	got, _, err = st.GetClient(ctx, ann.Client.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Plants.Len())
}

func TestCalendarAndPlantMonths(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	prune, err := NewCreateJobCommand(st, domain.Maintenance{
		Name:   "Prune",
		Months: domain.NewMonthSet(time.March),
	}).Execute(ctx)
	require.NoError(t, err)
	feed, err := NewCreateJobCommand(st, domain.Maintenance{
		Name:   "Feed",
		Months: domain.NewMonthSet(time.March, time.June),
	}).Execute(ctx)
	require.NoError(t, err)
	p, err := NewCreatePlantCommand(st, domain.Plant{
		Name:      "Rose",
		LatinName: "Rosa",
		Jobs:      domain.RefIDs[domain.Maintenance](prune.Job.ID, feed.Job.ID),
	}).Execute(ctx)
	require.NoError(t, err)

	cal, err := NewCalendarCommand(st, "March").Execute(ctx)
	require.NoError(t, err)
	assert.Len(t, cal.Jobs, 2)

	months, err := NewPlantMonthsCommand(st, p.Plant.ID).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.NewMonthSet(time.March, time.June), months.Months)

	_, err = NewPlantMonthsCommand(st, 404).Execute(ctx)
	assert.ErrorIs(t, err, application.ErrNotFound)
}
