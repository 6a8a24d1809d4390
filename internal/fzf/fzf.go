package fzf

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/Paintersrp/tome/internal/catalog"
	"github.com/Paintersrp/tome/internal/lore"
)

// ErrNoSelection is returned when the picker is aborted.
var ErrNoSelection = errors.New("no record selected")

type findFunc func(slice any, item func(int) string, opts ...fuzzyfinder.Option) (int, error)

// FuzzyFinder picks a record of one catalog by name with a rendered preview.
type FuzzyFinder struct {
	Header string

	catalog *catalog.Catalog
	records []catalog.Record
	labels  []string
	find    findFunc
}

// NewFuzzyFinder offers records of c. A nil records slice offers the whole
// catalog.
func NewFuzzyFinder(c *catalog.Catalog, records []catalog.Record, header string) *FuzzyFinder {
	if records == nil {
		records = c.Records()
	}
	f := &FuzzyFinder{
		Header:  header,
		catalog: c,
		records: records,
		labels:  make([]string, len(records)),
		find:    fuzzyfinder.Find,
	}
	for i, rec := range records {
		f.labels[i] = f.label(rec)
	}
	return f
}

func (f *FuzzyFinder) Run() (catalog.Record, error) {
	return f.RunWithQuery("")
}

func (f *FuzzyFinder) RunWithQuery(query string) (catalog.Record, error) {
	options := []fuzzyfinder.Option{
		fuzzyfinder.WithPreviewWindow(f.renderPreview),
	}

	if query != "" {
		options = append(options, fuzzyfinder.WithQuery(query))
	}

	if f.Header != "" {
		options = append(options, fuzzyfinder.WithHeader(f.Header))
	}

	idx, err := f.find(f.records, func(i int) string { return f.labels[i] }, options...)
	if errors.Is(err, fuzzyfinder.ErrAbort) {
		return catalog.Record{}, ErrNoSelection
	}
	if err != nil {
		return catalog.Record{}, fmt.Errorf("selecting record: %w", err)
	}
	if idx < 0 || idx >= len(f.records) {
		return catalog.Record{}, ErrNoSelection
	}

	return f.records[idx], nil
}

// label shows the record name followed by its facet labels.
func (f *FuzzyFinder) label(rec catalog.Record) string {
	var facets []string
	for _, i := range rec.Bits.Indices() {
		facets = append(facets, f.catalog.Schema.Label(i))
	}
	if len(facets) == 0 {
		return rec.Name
	}
	return fmt.Sprintf("%s [%s]", rec.Name, strings.Join(facets, ", "))
}

func (f *FuzzyFinder) renderPreview(i, w, h int) string {
	if i == -1 {
		return ""
	}

	md, err := lore.Preview(f.catalog, f.records[i], "")
	if err != nil {
		return "Error reading record"
	}

	out, err := lore.Render(md, max(w-4, 20))
	if err != nil {
		return "Error rendering record"
	}

	return out
}
