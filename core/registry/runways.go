package registry

import (
	"strconv"

	"github.com/kilianp07/flightops/core/model"
)

// Runways is the ordered runway registry.
type Runways struct {
	c collection[model.Runway, int]
}

func NewRunways(limit int) *Runways {
	if limit <= 0 {
		limit = MaxRunways
	}
	return &Runways{c: newCollection("runway", limit, func(r *model.Runway) int { return r.ID })}
}

// Add registers a runway. Negative ids are rejected since they collide with
// the unassigned marker on flights.
func (r *Runways) Add(rw model.Runway) error {
	if rw.ID < 0 {
		return &ValidationError{Field: "ID", Reason: "must be non-negative"}
	}
	return r.c.add(rw)
}

func (r *Runways) Get(id int) (*model.Runway, bool) { return r.c.get(id) }

func (r *Runways) Remove(id int) (model.Runway, error) {
	rw, err := r.c.remove(id)
	if err != nil {
		return rw, &NotFoundError{Kind: "runway", ID: strconv.Itoa(id)}
	}
	return rw, nil
}

func (r *Runways) At(i int) *model.Runway { return r.c.at(i) }
func (r *Runways) Len() int               { return r.c.len() }
func (r *Runways) Limit() int             { return r.c.limit }
func (r *Runways) Clear()                 { r.c.clear() }

// All returns a copy of every runway in registry order.
func (r *Runways) All() []model.Runway { return r.c.snapshot() }

// ResetAll releases every runway.
func (r *Runways) ResetAll() {
	for i := range r.c.items {
		r.c.items[i].Reset()
	}
}
