package correlate

import (
	"log/slog"

	"github.com/Paintersrp/tome/internal/catalog"
)

// Ref is a resolved cross-reference.
type Ref struct {
	Catalog *catalog.Catalog
	Record  catalog.Record
}

// Resolver looks names up across the loaded catalogs.
type Resolver struct {
	byKind map[string]*catalog.Catalog
	order  []*catalog.Catalog
	log    *slog.Logger
}

// NewResolver indexes catalogs by schema kind. The slice order is the order
// used for references that do not name a catalog.
func NewResolver(log *slog.Logger, catalogs ...*catalog.Catalog) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	r := &Resolver{byKind: make(map[string]*catalog.Catalog, len(catalogs)), log: log}
	for _, c := range catalogs {
		if _, dup := r.byKind[c.Schema.Kind]; !dup {
			r.byKind[c.Schema.Kind] = c
		}
		r.order = append(r.order, c)
	}
	return r
}

// Resolve finds name in the catalog of the given kind. An exact match wins;
// failing that, names sharing the first three runes are correlated in sorted
// order and the first hit is returned. When kind is empty or not loaded
// every catalog is searched for an exact match.
func (r *Resolver) Resolve(kind, name string) (Ref, bool) {
	c, ok := r.byKind[kind]
	if !ok {
		for _, c := range r.order {
			if rec, ok := c.Lookup(name); ok {
				return Ref{Catalog: c, Record: rec}, true
			}
		}
		r.log.Debug("unresolved reference", "kind", kind, "name", name)
		return Ref{}, false
	}

	if rec, ok := c.Lookup(name); ok {
		return Ref{Catalog: c, Record: rec}, true
	}

	lo, hi, ok := bounds(name)
	if !ok {
		return Ref{}, false
	}
	var found Ref
	c.Range(lo, hi, func(rec catalog.Record) bool {
		if Correlate(rec.Name, name) {
			found = Ref{Catalog: c, Record: rec}
			return false
		}
		return true
	})
	if found.Catalog == nil {
		r.log.Debug("unresolved reference", "kind", kind, "name", name)
		return Ref{}, false
	}
	r.log.Debug("correlated reference", "name", name, "match", found.Record.Name)
	return found, true
}

// bounds is the name range scanned for candidates: from the first three
// runes of name up to and including the two-rune prefix followed by the
// successor of the third rune.
func bounds(name string) (string, string, bool) {
	rs := []rune(name)
	if len(rs) < 3 {
		return "", "", false
	}
	lo := string(rs[:3])
	hi := string(rs[:2]) + string(rs[2]+1) + "\x00"
	return lo, hi, true
}
