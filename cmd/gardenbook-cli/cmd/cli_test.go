package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes a fresh command tree against db and returns its output
func run(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--db", db))

	err := root.Execute()
	closeStore()
	return out.String(), err
}

func TestRecordWorkflow(t *testing.T) {
	db := filepath.Join(t.TempDir(), "garden.db")

	out, err := run(t, db, "job", "add", "--name", "Prune", "--desc", "cut back", "--months", "March,October")
	require.NoError(t, err)
	assert.Equal(t, "Created job: #1 Prune [March, October]\n", out)

	out, err = run(t, db, "plant", "add", "--name", "Rose", "--latin-name", "Rosa", "--jobs", "1")
	require.NoError(t, err)
	assert.Equal(t, "Created plant: #1 Rose (Rosa)\n", out)

	out, err = run(t, db, "client", "add", "--name", "Smith", "--plants", "1")
	require.NoError(t, err)
	assert.Equal(t, "Created client: #1 Smith\n", out)

	out, err = run(t, db, "client", "show", "1")
	require.NoError(t, err)
	assert.Equal(t, "#1 Smith\n  #1 Rose (Rosa)\n    #1 Prune\n      March\n      October\n", out)

	out, err = run(t, db, "months", "March")
	require.NoError(t, err)
	assert.Equal(t, "#1 Prune\n", out)

	out, err = run(t, db, "months", "--plant", "1")
	require.NoError(t, err)
	assert.Equal(t, "March, October\n", out)

	out, err = run(t, db, "plant", "update", "1", "--name", "Rose", "--latin-name", "Rosa")
	require.NoError(t, err)
	assert.Equal(t, "Updated plant: #1 Rose (0 jobs)\n", out)

	out, err = run(t, db, "months", "--plant", "1")
	require.NoError(t, err)
	assert.Equal(t, "\n", out)

	out, err = run(t, db, "client", "delete", "1")
	require.NoError(t, err)
	assert.Equal(t, "Deleted Client #1\n", out)

	out, err = run(t, db, "client", "list")
	require.NoError(t, err)
	assert.Equal(t, "No clients.\n", out)
}

func TestLinkAndUnlink(t *testing.T) {
	db := filepath.Join(t.TempDir(), "garden.db")

	_, err := run(t, db, "client", "add", "--name", "Smith")
	require.NoError(t, err)
	_, err = run(t, db, "plant", "add", "--name", "Rose", "--latin-name", "Rosa")
	require.NoError(t, err)

	out, err := run(t, db, "link", "client-plant", "1", "1")
	require.NoError(t, err)
	assert.Equal(t, "Linked client-plant #1 -> #1\n", out)

	out, err = run(t, db, "unlink", "client-plant")
	require.NoError(t, err)
	assert.Equal(t, "Unlinked client-plant: 0 removed\n", out)

	_, err = run(t, db, "unlink", "plant-client", "--left", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "relation must be")

	out, err = run(t, db, "unlink", "client-plant", "--right", "1")
	require.NoError(t, err)
	assert.Equal(t, "Unlinked client-plant: 1 removed\n", out)
}

func TestErrors(t *testing.T) {
	db := filepath.Join(t.TempDir(), "garden.db")

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing name", []string{"client", "add"}, "name"},
		{"missing latin name", []string{"plant", "add", "--name", "Rose"}, "latin name"},
		{"update zero id", []string{"client", "update", "0", "--name", "X"}, "invalid ID: 0"},
		{"show missing", []string{"plant", "show", "9"}, "Plant #9 not found"},
		{"bad id", []string{"job", "show", "x"}, `invalid ID: "x"`},
		{"bad relation", []string{"link", "client-job", "1", "1"}, "relation must be"},
		{"bad month", []string{"months", "Marzo"}, "unknown month"},
		{"no month", []string{"months"}, "give a month name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, db, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	out, err := run(t, db, "client", "list")
	require.NoError(t, err)
	assert.Equal(t, "No clients.\n", out, "failed commands create nothing")
}
