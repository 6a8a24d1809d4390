package show

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Paintersrp/tome/internal/state/statetest"
)

const powerSchema = `
kind: powers
facets: [psion, wilder]
detail_fields: [{label: Discipline}]
categories:
  - {label: Psion, facet: psion}
  - {label: Wilder, facet: wilder}
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	s := statetest.New(t,
		statetest.Catalog{Name: "spells", Schema: statetest.SpellSchema, Data: statetest.SpellData},
		statetest.Catalog{Name: "powers", Schema: powerSchema, Data: "Energy Ray@11@Psychokinesis@Like a [1Ray of Frost] or [2Mind Thrust].\n"},
	)
	cmd := NewCmdShow(s)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestShowExact(t *testing.T) {
	out, err := execute(t, "Chill", "Touch")
	require.NoError(t, err)
	assert.Contains(t, out, "# Chill Touch")
	assert.Contains(t, out, "*Necromancy*")
	assert.Contains(t, out, "**Range:** Touch")
	assert.Contains(t, out, "A **cold** hand.")
}

func TestShowCorrelates(t *testing.T) {
	out, err := execute(t, "Fireballs")
	require.NoError(t, err)
	assert.Contains(t, out, "# Fireball\n")

	out, err = execute(t, "Energy Rays", "--kind", "powers")
	require.NoError(t, err)
	assert.Contains(t, out, "# Energy Ray\n")
	assert.Contains(t, out, "**Discipline:** Psychokinesis")
}

func TestShowFallbackAndHighlight(t *testing.T) {
	out, err := execute(t, "Ray of Frost", "--highlight", "numbing")
	require.NoError(t, err)
	assert.Contains(t, out, "**Range:** None")
	assert.Contains(t, out, "A ray of **numbing** cold.")
}

func TestShowReferences(t *testing.T) {
	out, err := execute(t, "Energy Ray", "--refs")
	require.NoError(t, err)
	assert.Contains(t, out, "## References")
	assert.Contains(t, out, "- Ray of Frost (spells)")
	assert.Contains(t, out, "- Mind Thrust (unresolved)")
}

func TestShowUnknown(t *testing.T) {
	_, err := execute(t, "Wish")
	assert.ErrorContains(t, err, "no such record")
}

func TestShowRendered(t *testing.T) {
	out, err := execute(t, "Fire Shield", "--raw=false", "--width", "60")
	require.NoError(t, err)
	// Output to a buffer is not a terminal, so Markdown is printed as is.
	assert.Contains(t, out, "# Fire Shield")
}
