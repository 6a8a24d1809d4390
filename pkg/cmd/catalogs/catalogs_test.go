package catalogs

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Paintersrp/tome/internal/config"
	"github.com/Paintersrp/tome/internal/state"
	"github.com/Paintersrp/tome/internal/state/statetest"
)

func execute(t *testing.T, s *state.State, args ...string) (string, error) {
	t.Helper()
	cmd := NewCmdCatalogs(s)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestListCatalogs(t *testing.T) {
	s := statetest.Spells(t)
	out, err := execute(t, s)
	require.NoError(t, err)
	assert.Contains(t, out, "* spells\tspells.schema.yaml\tspells.txt")
}

func TestAddRemoveAndDefault(t *testing.T) {
	s := statetest.Spells(t)

	out, err := execute(t, s, "add", "powers", "powers.txt", "--watch")
	require.NoError(t, err)
	assert.Contains(t, out, "Added catalog powers")
	assert.NotContains(t, out, "Warning")

	reloaded, err := config.Load("")
	require.NoError(t, err)
	require.Contains(t, reloaded.Catalogs, "powers")
	assert.True(t, reloaded.Catalogs["powers"].Watch)
	assert.Equal(t, []string{"spells", "powers"}, reloaded.Order)

	_, err = execute(t, s, "default", "powers")
	require.NoError(t, err)
	out, err = execute(t, s)
	require.NoError(t, err)
	assert.Contains(t, out, "* powers")

	_, err = execute(t, s, "remove", "spells")
	require.NoError(t, err)

	reloaded, err = config.Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"powers"}, reloaded.Order)
}

func TestAddWarnsAboutUnknownSchema(t *testing.T) {
	s := statetest.Spells(t)
	out, err := execute(t, s, "add", "homebrew", "homebrew.txt")
	require.NoError(t, err)
	assert.Contains(t, out, `Warning: schema "homebrew" does not load`)
}

func TestRemoveUnknown(t *testing.T) {
	s := statetest.Spells(t)
	_, err := execute(t, s, "remove", "feats")
	assert.Error(t, err)
}
