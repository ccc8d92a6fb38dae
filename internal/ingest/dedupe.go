package ingest

import "github.com/rsoares/friendsleague/internal/models"

// Deduplicator collapses the same battle reported from both participants'
// logs within a single run. First occurrence wins; storage handles
// cross-run duplicates via its insert-if-absent semantics.
type Deduplicator struct {
	seen map[string]struct{}
}

func NewDeduplicator() *Deduplicator {
	return &Deduplicator{seen: make(map[string]struct{})}
}

// Add reports whether the match is new to this run.
func (d *Deduplicator) Add(m models.Match) bool {
	if _, ok := d.seen[m.ID]; ok {
		return false
	}
	d.seen[m.ID] = struct{}{}
	return true
}
