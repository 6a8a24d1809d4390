// Package statetest builds States over temporary catalogs for command tests.
package statetest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/tome/internal/config"
	"github.com/Paintersrp/tome/internal/state"
)

// Catalog describes one catalog fixture. Schema is either a builtin kind or
// an inline schema document.
type Catalog struct {
	Name   string
	Schema string
	Data   string
	Watch  bool
}

// SpellSchema is a small spells schema for fixtures.
const SpellSchema = `
kind: spells
facets: [fire, cold, ranged, touch, evocation]
detail_fields:
  - label: ""
  - label: Range
    fallback: None
highlight: [evocation]
colours:
  - {facet: fire, colour: "#ff5555"}
categories:
  - label: Energy
    toggle: group
    children:
      - {label: Fire, facet: fire}
      - {label: Cold, facet: cold}
  - label: Ranges
    children:
      - {label: Ranged, facet: ranged}
      - {label: Touch, facet: touch}
  - {label: Evocation, facet: evocation}
`

// SpellData pairs with SpellSchema. Bits read right to left: fire, cold,
// ranged, touch, evocation.
const SpellData = "Fireball@10101@Evocation [Fire];Long@A {bright} flash. See [1Fire Shield].\n" +
	"Fire Shield@10001@Evocation [Fire];Personal@Flames wreathe you.\n" +
	"Chill Touch@01010@Necromancy;Touch@A {{cold}} hand.\n" +
	"Ray of Frost@10110@Evocation [Cold];@A ray of numbing cold.\n"

// New writes the catalogs into a temporary configuration directory and
// returns a State over them. The first catalog is the default.
func New(t testing.TB, catalogs ...Catalog) *state.State {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	t.Setenv("TOME_CONFIG_DIR", dir)

	entries := make(map[string]any, len(catalogs))
	order := make([]string, 0, len(catalogs))
	for _, c := range catalogs {
		sch := c.Schema
		if len(sch) > 0 && sch[0] == '\n' {
			file := c.Name + ".schema.yaml"
			write(t, filepath.Join(dir, file), sch)
			sch = file
		}
		write(t, filepath.Join(dir, c.Name+".txt"), c.Data)
		entries[c.Name] = map[string]any{
			"source": c.Name + ".txt",
			"schema": sch,
			"watch":  c.Watch,
		}
		order = append(order, c.Name)
	}

	data, err := yaml.Marshal(map[string]any{"catalogs": entries, "order": order})
	if err != nil {
		t.Fatalf("failed to marshal config: %v", err)
	}
	write(t, config.GetConfigPath(""), string(data))

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	s := state.New(cfg, nil)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// Spells returns a State with one "spells" catalog built from SpellSchema
// and SpellData.
func Spells(t testing.TB) *state.State {
	t.Helper()
	return New(t, Catalog{Name: "spells", Schema: SpellSchema, Data: SpellData})
}

func write(t testing.TB, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
