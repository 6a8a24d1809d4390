package fzf

import (
	"context"
	"errors"
	"testing"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Paintersrp/tome/internal/catalog"
	"github.com/Paintersrp/tome/internal/lore"
	"github.com/Paintersrp/tome/internal/schema"
)

const testSchema = `
kind: spells
facets: [fire, cold]
detail_fields:
  - label: ""
  - label: Range
categories:
  - {label: Fire, facet: fire}
  - {label: Cold, facet: cold}
`

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	sch, err := schema.Parse([]byte(testSchema))
	require.NoError(t, err)
	data := "Fireball@01@Evocation;Long@A {bright} flash.\n" +
		"Chill Touch@10@Necromancy;Touch@A cold hand.\n" +
		"Light@00@Evocation@Glows.\n"
	c, err := catalog.Load(context.Background(), "spells", sch, catalog.FromBytes("mem", []byte(data)))
	require.NoError(t, err)
	return c
}

func TestLabelsListFacets(t *testing.T) {
	f := NewFuzzyFinder(testCatalog(t), nil, "")
	assert.Equal(t, []string{"Fireball [Fire]", "Chill Touch [Cold]", "Light"}, f.labels)
}

func TestRunReturnsSelectedRecord(t *testing.T) {
	c := testCatalog(t)
	f := NewFuzzyFinder(c, c.Records()[1:], "Pick a spell")

	var seen []string
	f.find = func(slice any, item func(int) string, opts ...fuzzyfinder.Option) (int, error) {
		for i := range slice.([]catalog.Record) {
			seen = append(seen, item(i))
		}
		return 1, nil
	}

	rec, err := f.RunWithQuery("li")
	require.NoError(t, err)
	assert.Equal(t, "Light", rec.Name)
	assert.Equal(t, []string{"Chill Touch [Cold]", "Light"}, seen)
}

func TestRunAbort(t *testing.T) {
	f := NewFuzzyFinder(testCatalog(t), nil, "")
	f.find = func(any, func(int) string, ...fuzzyfinder.Option) (int, error) {
		return -1, fuzzyfinder.ErrAbort
	}
	_, err := f.Run()
	assert.ErrorIs(t, err, ErrNoSelection)

	f.find = func(any, func(int) string, ...fuzzyfinder.Option) (int, error) {
		return -1, errors.New("no tty")
	}
	_, err = f.Run()
	assert.ErrorContains(t, err, "no tty")
}

func TestPreview(t *testing.T) {
	c := testCatalog(t)

	md, err := lore.Preview(c, c.Record(0), "flash")
	require.NoError(t, err)
	assert.Contains(t, md, "# Fireball")
	assert.Contains(t, md, "**Range:** Long")
	assert.Contains(t, md, "A *bright* **flash**.")

	// A record whose info does not fit the schema still previews its text.
	md, err = lore.Preview(c, c.Record(2), "")
	require.NoError(t, err)
	assert.Contains(t, md, "Glows.")

	f := NewFuzzyFinder(c, nil, "")
	assert.Empty(t, f.renderPreview(-1, 80, 20))
	assert.Contains(t, f.renderPreview(0, 80, 20), "Fireball")
}
