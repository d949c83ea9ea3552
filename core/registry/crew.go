package registry

import (
	"strconv"
	"strings"

	"github.com/kilianp07/flightops/core/model"
)

// Crews is the ordered crew registry.
type Crews struct {
	c collection[model.Crew, int]
}

func NewCrews(limit int) *Crews {
	if limit <= 0 {
		limit = MaxCrew
	}
	return &Crews{c: newCollection("crew", limit, func(c *model.Crew) int { return c.ID })}
}

func (r *Crews) Add(c model.Crew) error {
	if c.ID < 0 {
		return &ValidationError{Field: "ID", Reason: "must be non-negative"}
	}
	if strings.TrimSpace(c.Name) == "" {
		return &ValidationError{Field: "Name", Reason: "required"}
	}
	if len(c.Name) > MaxTextLen {
		return &ValidationError{Field: "Name", Reason: "longer than " + strconv.Itoa(MaxTextLen) + " bytes"}
	}
	if len(model.JoinQualifications(c.Qualifications)) > MaxTextLen {
		return &ValidationError{Field: "Qualifications", Reason: "longer than " + strconv.Itoa(MaxTextLen) + " bytes"}
	}
	c.Qualifications = append([]string(nil), c.Qualifications...)
	return r.c.add(c)
}

func (r *Crews) Get(id int) (*model.Crew, bool) { return r.c.get(id) }

func (r *Crews) Remove(id int) (model.Crew, error) {
	c, err := r.c.remove(id)
	if err != nil {
		return c, &NotFoundError{Kind: "crew", ID: strconv.Itoa(id)}
	}
	return c, nil
}

func (r *Crews) At(i int) *model.Crew { return r.c.at(i) }
func (r *Crews) Len() int             { return r.c.len() }
func (r *Crews) Limit() int           { return r.c.limit }
func (r *Crews) Clear()               { r.c.clear() }

// All returns a deep copy of every crew member in registry order.
func (r *Crews) All() []model.Crew {
	out := r.c.snapshot()
	for i := range out {
		out[i].Qualifications = append([]string(nil), out[i].Qualifications...)
	}
	return out
}

// ResetAll clears duty time and availability for every crew member.
func (r *Crews) ResetAll() {
	for i := range r.c.items {
		r.c.items[i].Reset()
	}
}
