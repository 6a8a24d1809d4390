package match

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/Paintersrp/tome/internal/catalog"
	"github.com/Paintersrp/tome/internal/facet"
)

// Mode selects the record set a search runs over.
type Mode int

const (
	// Full scans the whole catalog.
	Full Mode = iota
	// Refine scans only the records kept by the previous search.
	Refine
)

func (m Mode) String() string {
	if m == Refine {
		return "refine"
	}
	return "full"
}

// Corpus is the record store a Session searches.
type Corpus interface {
	LineReader
	Records() []catalog.Record
}

// Session owns the retained result set of one browsing session. It is not
// safe for concurrent use.
type Session struct {
	corpus   Corpus
	retained *roaring.Bitmap
	log      *slog.Logger
}

func NewSession(c Corpus, log *slog.Logger) *Session {
	if log == nil {
		log = slog.Default()
	}
	return &Session{corpus: c, retained: roaring.New(), log: log}
}

// Search evaluates the filter and query and replaces the retained set with
// the survivors, returned in catalog order. In Refine mode only previously
// retained records are considered, so records never reappear.
func (s *Session) Search(ctx context.Context, f facet.Filter, q Query, mode Mode) ([]catalog.Record, error) {
	m := NewMatcher(f, q)
	records := s.corpus.Records()
	next := roaring.New()

	consider := func(id int) error {
		ok, err := m.Match(records[id], s.corpus)
		if err != nil {
			return err
		}
		if ok {
			next.Add(uint32(id))
		}
		return nil
	}

	var scanned int
	switch mode {
	case Refine:
		it := s.retained.Iterator()
		for it.HasNext() {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := consider(int(it.Next())); err != nil {
				return nil, fmt.Errorf("match: refine: %w", err)
			}
			scanned++
		}
	default:
		for id := range records {
			if id%1024 == 0 {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
			}
			if err := consider(id); err != nil {
				return nil, fmt.Errorf("match: scan: %w", err)
			}
		}
		scanned = len(records)
	}

	s.retained = next
	s.log.Debug("search finished", "mode", mode.String(), "scanned", scanned, "matched", next.GetCardinality(), "filter", f.String())
	return s.Results(), nil
}

// Results returns the retained records in catalog order.
func (s *Session) Results() []catalog.Record {
	records := s.corpus.Records()
	out := make([]catalog.Record, 0, s.retained.GetCardinality())
	it := s.retained.Iterator()
	for it.HasNext() {
		out = append(out, records[it.Next()])
	}
	return out
}

// Len is the size of the retained set.
func (s *Session) Len() int { return int(s.retained.GetCardinality()) }

// Contains reports whether record id is retained.
func (s *Session) Contains(id int) bool { return s.retained.Contains(uint32(id)) }

// Clear drops the retained set.
func (s *Session) Clear() { s.retained.Clear() }

// Summary renders the result count the way the status line shows it.
func Summary(n int) string {
	if n > 1 {
		return fmt.Sprintf("%d results.", n)
	}
	return fmt.Sprintf("%d result.", n)
}
