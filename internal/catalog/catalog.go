package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Paintersrp/tome/internal/schema"
)

var (
	// ErrDetailFieldCount means a record's detail info cannot be rendered.
	ErrDetailFieldCount = errors.New("detail field count mismatch")
	ErrNotFound         = errors.New("record not found")
)

// Catalog is a loaded, read-only set of records of one kind.
type Catalog struct {
	Name   string
	Schema *schema.Schema

	records []Record
	src     Source
	byName  map[string]int
	sorted  []int
}

// Load parses every record of src. The catalog keeps src open for lazy
// reads of detail info and descriptions; Close releases it.
func Load(ctx context.Context, name string, sch *schema.Schema, src Source) (*Catalog, error) {
	records, err := Parse(ctx, io.NewSectionReader(src, 0, src.Size()), sch.Universe())
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", name, err)
	}
	return New(name, sch, src, records), nil
}

// New builds a catalog over already parsed records.
func New(name string, sch *schema.Schema, src Source, records []Record) *Catalog {
	c := &Catalog{
		Name:    name,
		Schema:  sch,
		records: records,
		src:     src,
		byName:  make(map[string]int, len(records)),
		sorted:  make([]int, len(records)),
	}
	for i, r := range records {
		if _, dup := c.byName[r.Name]; !dup {
			c.byName[r.Name] = i
		}
		c.sorted[i] = i
	}
	sort.SliceStable(c.sorted, func(a, b int) bool {
		return records[c.sorted[a]].Name < records[c.sorted[b]].Name
	})
	return c
}

func (c *Catalog) Close() error {
	if c.src == nil {
		return nil
	}
	return c.src.Close()
}

func (c *Catalog) Len() int { return len(c.records) }

// Records returns the records in catalog order. The slice must not be
// modified.
func (c *Catalog) Records() []Record { return c.records }

func (c *Catalog) Record(id int) Record { return c.records[id] }

// Lookup finds a record by exact name.
func (c *Catalog) Lookup(name string) (Record, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Record{}, false
	}
	return c.records[i], true
}

// Range calls fn for every record with lo <= name < hi in byte order of
// names, stopping early when fn returns false.
func (c *Catalog) Range(lo, hi string, fn func(Record) bool) {
	start := sort.Search(len(c.sorted), func(i int) bool {
		return c.records[c.sorted[i]].Name >= lo
	})
	for _, id := range c.sorted[start:] {
		r := c.records[id]
		if r.Name >= hi {
			return
		}
		if !fn(r) {
			return
		}
	}
}

// Line returns the description line of rec.
func (c *Catalog) Line(rec Record) (string, error) {
	s, err := readField(c.src, rec.Loc.Text, '\n')
	if err != nil {
		return "", fmt.Errorf("catalog %s: %s: description: %w", c.Name, rec.Name, err)
	}
	return s, nil
}

// Info returns the raw subfields of rec's detail info.
func (c *Catalog) Info(rec Record) ([]string, error) {
	s, err := readField(c.src, rec.Loc.Info, fieldSep)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %s: info: %w", c.Name, rec.Name, err)
	}
	fields := strings.Split(s, detailSep)
	if want := len(c.Schema.DetailFields); len(fields) != want {
		return nil, fmt.Errorf("catalog %s: %s: %w: got %d, want %d", c.Name, rec.Name, ErrDetailFieldCount, len(fields), want)
	}
	return fields, nil
}

// Detail renders rec's info subfields with their labels. Optional empty
// subfields are dropped and empty subfields with a fallback show it.
func (c *Catalog) Detail(rec Record) ([]DetailLine, error) {
	fields, err := c.Info(rec)
	if err != nil {
		return nil, err
	}
	lines := make([]DetailLine, 0, len(fields))
	for i, f := range c.Schema.DetailFields {
		v := fields[i]
		if v == "" {
			if f.Optional {
				continue
			}
			v = f.Fallback
		}
		lines = append(lines, DetailLine{Label: f.Label, Value: v})
	}
	return lines, nil
}
