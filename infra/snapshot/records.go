package snapshot

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/kilianp07/flightops/core/model"
	"github.com/kilianp07/flightops/core/timeofday"
)

// fieldLen is the fixed width of every string field. Values hold at most
// maxText bytes and are NUL terminated.
const (
	fieldLen = 50
	maxText  = fieldLen - 1
)

type text [fieldLen]byte

func putText(s string) (text, error) {
	var t text
	if len(s) > maxText {
		return t, fmt.Errorf("value %q exceeds %d bytes", s, maxText)
	}
	copy(t[:], s)
	return t, nil
}

// clipText cuts s to maxText bytes without splitting a UTF-8 sequence.
func clipText(s string) (text, bool) {
	if len(s) <= maxText {
		t, _ := putText(s)
		return t, false
	}
	n := maxText
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	t, _ := putText(s[:n])
	return t, true
}

// clipQualifications keeps the leading qualifications that fit in one
// field, dropping whole entries rather than cutting one in half.
func clipQualifications(q []string) (text, bool) {
	joined := model.JoinQualifications(q)
	if len(joined) <= maxText {
		t, _ := putText(joined)
		return t, false
	}
	kept := q[:0:0]
	for _, v := range q {
		if len(model.JoinQualifications(append(kept, v))) > maxText {
			break
		}
		kept = append(kept, v)
	}
	t, _ := putText(model.JoinQualifications(kept))
	return t, true
}

func (t text) String() string {
	if i := bytes.IndexByte(t[:], 0); i >= 0 {
		return string(t[:i])
	}
	return string(t[:])
}

func flag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

type clock struct {
	Hour   int32
	Minute int32
}

func toClock(t timeofday.TimeOfDay) clock {
	return clock{Hour: int32(t.Hour), Minute: int32(t.Minute)}
}

func (c clock) timeOfDay() (timeofday.TimeOfDay, error) {
	if c.Hour < 0 || c.Hour > 23 || c.Minute < 0 || c.Minute > 59 {
		return timeofday.TimeOfDay{}, fmt.Errorf("time %02d:%02d out of range", c.Hour, c.Minute)
	}
	return timeofday.New(int(c.Hour), int(c.Minute)), nil
}

type flightRecord struct {
	ID          text
	Origin      text
	Destination text
	Aircraft    text
	Departure   clock
	Arrival     clock
	Priority    int32
	Status      int32
	Runway      int32
	Crew        int32
	Delay       int32
	Cargo       uint8
	_           [3]byte
}

func encodeFlight(f model.Flight) (flightRecord, error) {
	rec := flightRecord{
		Departure: toClock(f.Departure),
		Arrival:   toClock(f.Arrival),
		Priority:  int32(f.Priority),
		Status:    int32(f.Status),
		Runway:    int32(f.RunwayID),
		Crew:      int32(f.CrewID),
		Delay:     int32(f.DelayMinutes),
		Cargo:     flag(f.Cargo),
	}
	var err error
	for _, p := range []struct {
		dst *text
		src string
	}{{&rec.ID, f.ID}, {&rec.Origin, f.Origin}, {&rec.Destination, f.Destination}, {&rec.Aircraft, f.AircraftType}} {
		if *p.dst, err = putText(p.src); err != nil {
			return rec, fmt.Errorf("flight %s: %w", f.ID, err)
		}
	}
	return rec, nil
}

func (r flightRecord) decode() (model.Flight, error) {
	dep, err := r.Departure.timeOfDay()
	if err != nil {
		return model.Flight{}, fmt.Errorf("flight %s departure: %w", r.ID, err)
	}
	arr, err := r.Arrival.timeOfDay()
	if err != nil {
		return model.Flight{}, fmt.Errorf("flight %s arrival: %w", r.ID, err)
	}
	prio := model.Priority(r.Priority)
	if !prio.Valid() {
		return model.Flight{}, fmt.Errorf("flight %s: priority %d out of range", r.ID, r.Priority)
	}
	status := model.Status(r.Status)
	if !status.Valid() {
		return model.Flight{}, fmt.Errorf("flight %s: status %d out of range", r.ID, r.Status)
	}
	return model.Flight{
		ID:           r.ID.String(),
		Origin:       r.Origin.String(),
		Destination:  r.Destination.String(),
		AircraftType: r.Aircraft.String(),
		Departure:    dep,
		Arrival:      arr,
		Priority:     prio,
		Status:       status,
		RunwayID:     int(r.Runway),
		CrewID:       int(r.Crew),
		DelayMinutes: int(r.Delay),
		Cargo:        r.Cargo != 0,
	}, nil
}

type runwayRecord struct {
	ID            int32
	Type          int32
	Available     uint8
	_             [3]byte
	NextAvailable clock
}

func encodeRunway(rw model.Runway) runwayRecord {
	return runwayRecord{
		ID:            int32(rw.ID),
		Type:          int32(rw.Type),
		Available:     flag(rw.Available),
		NextAvailable: toClock(rw.NextAvailable),
	}
}

func (r runwayRecord) decode() (model.Runway, error) {
	next, err := r.NextAvailable.timeOfDay()
	if err != nil {
		return model.Runway{}, fmt.Errorf("runway %d: %w", r.ID, err)
	}
	typ := model.RunwayType(r.Type)
	if !typ.Valid() {
		return model.Runway{}, fmt.Errorf("runway %d: type %d out of range", r.ID, r.Type)
	}
	return model.Runway{
		ID:            int(r.ID),
		Type:          typ,
		Available:     r.Available != 0,
		NextAvailable: next,
	}, nil
}

type crewRecord struct {
	ID             int32
	Name           text
	_              [2]byte
	DutyMinutes    int32
	LastFlightEnd  clock
	Available      uint8
	Qualifications text
	_              [1]byte
}

// encodeCrew clips an oversized name or qualification list to the field
// width and reports whether it had to.
func encodeCrew(c model.Crew) (crewRecord, bool) {
	name, clippedName := clipText(c.Name)
	quals, clippedQuals := clipQualifications(c.Qualifications)
	return crewRecord{
		ID:             int32(c.ID),
		Name:           name,
		DutyMinutes:    int32(c.DutyMinutes),
		LastFlightEnd:  toClock(c.LastFlightEnd),
		Available:      flag(c.Available),
		Qualifications: quals,
	}, clippedName || clippedQuals
}

func (r crewRecord) decode() (model.Crew, error) {
	last, err := r.LastFlightEnd.timeOfDay()
	if err != nil {
		return model.Crew{}, fmt.Errorf("crew %d: %w", r.ID, err)
	}
	return model.Crew{
		ID:             int(r.ID),
		Name:           r.Name.String(),
		DutyMinutes:    int(r.DutyMinutes),
		LastFlightEnd:  last,
		Available:      r.Available != 0,
		Qualifications: model.ParseQualifications(r.Qualifications.String()),
	}, nil
}
