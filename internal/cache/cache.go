// Package cache keeps rendered record previews so that moving back over
// results does not render them again.
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Key identifies one rendering of a record.
type Key struct {
	Catalog   string
	Record    int
	Highlight string
	Width     int
}

type Previews struct {
	lru *lru.Cache[Key, string]
}

// New returns a cache holding at most size previews.
func New(size int) (*Previews, error) {
	c, err := lru.New[Key, string](size)
	if err != nil {
		return nil, err
	}
	return &Previews{lru: c}, nil
}

func (p *Previews) Get(k Key) (string, bool) {
	return p.lru.Get(k)
}

func (p *Previews) Put(k Key, rendered string) {
	p.lru.Add(k, rendered)
}

// Purge drops every preview of the named catalog.
func (p *Previews) Purge(catalog string) {
	for _, k := range p.lru.Keys() {
		if k.Catalog == catalog {
			p.lru.Remove(k)
		}
	}
}

func (p *Previews) Len() int {
	return p.lru.Len()
}
