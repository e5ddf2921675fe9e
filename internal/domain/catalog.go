package domain

import "time"

// Catalog is an immutable snapshot of the state and quality-grade lists
// served by the prediction API. A snapshot is only replaced by an explicit
// re-fetch; validation always runs against the snapshot it was handed.
type Catalog struct {
	states    []string
	grades    []string
	fetchedAt time.Time
}

// NewCatalog builds a snapshot from freshly fetched lists. The slices are
// copied so later mutation by the caller cannot leak into the snapshot.
func NewCatalog(states, grades []string) Catalog {
	s := make([]string, len(states))
	copy(s, states)
	g := make([]string, len(grades))
	copy(g, grades)

	return Catalog{
		states:    s,
		grades:    g,
		fetchedAt: time.Now(),
	}
}

// Ready reports whether the snapshot has been populated by a fetch.
// The zero value is not ready.
func (c Catalog) Ready() bool {
	return len(c.states) > 0 && len(c.grades) > 0
}

// States returns a copy of the state list in fetch order.
func (c Catalog) States() []string {
	out := make([]string, len(c.states))
	copy(out, c.states)
	return out
}

// Grades returns a copy of the quality-grade list in fetch order.
func (c Catalog) Grades() []string {
	out := make([]string, len(c.grades))
	copy(out, c.grades)
	return out
}

// HasState reports membership in the snapshot's state list.
func (c Catalog) HasState(state string) bool {
	for _, s := range c.states {
		if s == state {
			return true
		}
	}
	return false
}

// HasGrade reports membership in the snapshot's quality-grade list.
func (c Catalog) HasGrade(grade string) bool {
	for _, g := range c.grades {
		if g == grade {
			return true
		}
	}
	return false
}

// FetchedAt returns when the snapshot was taken.
func (c Catalog) FetchedAt() time.Time {
	return c.fetchedAt
}
