package catalog

import "github.com/Paintersrp/tome/internal/facet"

// Locator holds the byte offsets of a record's detail-info field and of its
// description line inside the catalog source.
type Locator struct {
	Info int64
	Text int64
}

// Record is one immutable catalog entry. ID is its position in catalog
// order.
type Record struct {
	ID   int
	Name string
	Bits facet.Bitset
	Loc  Locator
}

// DetailLine is one rendered detail subfield. Label is empty for the
// unlabelled summary line.
type DetailLine struct {
	Label string
	Value string
}
