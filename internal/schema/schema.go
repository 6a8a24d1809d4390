// Package schema describes the facets of a catalog kind: the facet universe
// in bit order, the toggle tree shown to users, the labels of the detail
// subfields and presentation hints.
//
// Toggle defaults: a node bound to a facet gets a four-state button, a
// nested node grouping children gets one too, and a top-level node without
// a facet is a pure container. Set `toggle` to override.
package schema

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/tome/internal/facet"
)

//go:embed schemas/*.yaml
var builtin embed.FS

var (
	ErrUnknownFacet  = errors.New("unknown facet")
	ErrUnknownKind   = errors.New("unknown catalog kind")
	ErrInvalidSchema = errors.New("invalid schema")
)

type Field struct {
	Label    string `yaml:"label"`
	Optional bool   `yaml:"optional"`
	Fallback string `yaml:"fallback"`
}

type Colour struct {
	Facet  string `yaml:"facet"`
	Colour string `yaml:"colour"`
}

type Category struct {
	Label    string     `yaml:"label"`
	Facet    string     `yaml:"facet"`
	Toggle   string     `yaml:"toggle"`
	Children []Category `yaml:"children"`
}

type Schema struct {
	Kind         string     `yaml:"kind"`
	Facets       []string   `yaml:"facets"`
	DetailFields []Field    `yaml:"detail_fields"`
	Highlight    []string   `yaml:"highlight"`
	Colours      []Colour   `yaml:"colours"`
	Categories   []Category `yaml:"categories"`

	index  map[string]int
	labels []string
}

// Builtin returns the embedded schema for kind.
func Builtin(kind string) (*Schema, error) {
	data, err := builtin.ReadFile("schemas/" + kind + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("schema: %w: %q", ErrUnknownKind, kind)
	}
	return Parse(data)
}

// Kinds lists the embedded schema kinds.
func Kinds() []string {
	entries, _ := builtin.ReadDir("schemas")
	kinds := make([]string, 0, len(entries))
	for _, e := range entries {
		kinds = append(kinds, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	return kinds
}

// Load reads a schema from path.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a schema document.
func Parse(data []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("schema: decode: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Schema) validate() error {
	if s.Kind == "" {
		return fmt.Errorf("schema: %w: missing kind", ErrInvalidSchema)
	}
	if len(s.Facets) == 0 {
		return fmt.Errorf("schema %s: %w: empty facet universe", s.Kind, ErrInvalidSchema)
	}
	s.index = make(map[string]int, len(s.Facets))
	for i, f := range s.Facets {
		if _, dup := s.index[f]; dup {
			return fmt.Errorf("schema %s: %w: duplicate facet %q", s.Kind, ErrInvalidSchema, f)
		}
		s.index[f] = i
	}
	for _, h := range s.Highlight {
		if _, ok := s.index[h]; !ok {
			return fmt.Errorf("schema %s: highlight: %w: %q", s.Kind, ErrUnknownFacet, h)
		}
	}
	for _, c := range s.Colours {
		if _, ok := s.index[c.Facet]; !ok {
			return fmt.Errorf("schema %s: colours: %w: %q", s.Kind, ErrUnknownFacet, c.Facet)
		}
	}
	// Building once checks every category node.
	forest, err := s.forest()
	if err != nil {
		return err
	}
	s.labels = append([]string(nil), s.Facets...)
	facet.Walk(forest, func(_ []string, n *facet.Node) bool {
		if n.HasBit && s.labels[n.Bit] == s.Facets[n.Bit] {
			s.labels[n.Bit] = n.Label
		}
		return true
	})
	return nil
}

// Universe is the facet count N for this kind.
func (s *Schema) Universe() int { return len(s.Facets) }

// Index returns the bit index of a facet name.
func (s *Schema) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Label returns the display label of bit i, falling back to the facet name.
func (s *Schema) Label(i int) string { return s.labels[i] }

// Forest builds a fresh toggle tree with every node neutral.
func (s *Schema) Forest() []*facet.Node {
	forest, err := s.forest()
	if err != nil {
		// validate already built this tree once.
		panic(err)
	}
	return forest
}

func (s *Schema) forest() ([]*facet.Node, error) {
	nodes := make([]*facet.Node, 0, len(s.Categories))
	for _, c := range s.Categories {
		n, err := s.build(c, nil)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func (s *Schema) build(c Category, path []string) (*facet.Node, error) {
	label := c.Label
	if label == "" {
		label = c.Facet
	}
	path = append(path, label)
	where := strings.Join(path, "/")

	n := &facet.Node{Label: label}
	if c.Facet != "" {
		bit, ok := s.index[c.Facet]
		if !ok {
			return nil, fmt.Errorf("schema %s: %s: %w: %q", s.Kind, where, ErrUnknownFacet, c.Facet)
		}
		n.Bit, n.HasBit = bit, true
	} else if len(c.Children) == 0 {
		return nil, fmt.Errorf("schema %s: %s: %w: node has neither facet nor children", s.Kind, where, ErrInvalidSchema)
	}

	switch {
	case c.Toggle != "":
		t, ok := facet.ParseToggle(c.Toggle)
		if !ok {
			return nil, fmt.Errorf("schema %s: %s: %w: toggle %q", s.Kind, where, ErrInvalidSchema, c.Toggle)
		}
		n.Toggle = t
	case n.HasBit || len(path) > 1:
		n.Toggle = facet.ToggleFacet
	}

	for _, child := range c.Children {
		cn, err := s.build(child, path)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, cn)
	}
	return n, nil
}

// HighlightSet returns the facets that mark a record for emphasis.
func (s *Schema) HighlightSet() facet.Bitset {
	b := facet.NewBitset(s.Universe())
	for _, h := range s.Highlight {
		b.Set(s.index[h])
	}
	return b
}

// Colour returns the colour of the first listed facet present in bits.
func (s *Schema) Colour(bits facet.Bitset) (string, bool) {
	for _, c := range s.Colours {
		if bits.Test(s.index[c.Facet]) {
			return c.Colour, true
		}
	}
	return "", false
}

// Find resolves a user reference to a node of forest. The reference is a
// label path such as "Ranges/Fixed", a unique label, or a facet name.
func (s *Schema) Find(forest []*facet.Node, ref string) (*facet.Node, error) {
	if n, ok := facet.Find(forest, ref); ok {
		return n, nil
	}
	bit, ok := s.index[ref]
	if !ok {
		return nil, fmt.Errorf("schema %s: %w: %q", s.Kind, ErrUnknownFacet, ref)
	}
	var found *facet.Node
	facet.Walk(forest, func(_ []string, n *facet.Node) bool {
		if found == nil && n.HasBit && n.Bit == bit && n.Toggle != facet.ToggleNone {
			found = n
		}
		return found == nil
	})
	if found == nil {
		return nil, fmt.Errorf("schema %s: facet %q has no button", s.Kind, ref)
	}
	return found, nil
}
