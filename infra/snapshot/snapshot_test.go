package snapshot

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/flightops/core/model"
	"github.com/kilianp07/flightops/core/registry"
	"github.com/kilianp07/flightops/core/timeofday"
)

func sampleState() ([]model.Flight, []model.Runway, []model.Crew) {
	flights := []model.Flight{
		{ID: "AA100", Origin: "JFK", Destination: "LAX", AircraftType: "Boeing737",
			Departure: timeofday.New(9, 0), Arrival: timeofday.New(12, 30),
			Priority: model.PriorityDomestic, Status: model.StatusDelayed,
			RunwayID: 0, CrewID: 2, DelayMinutes: 15},
		{ID: "CG7", Origin: "ANC", Destination: "ORD", AircraftType: "AirbusA330",
			Departure: timeofday.New(23, 50), Arrival: timeofday.New(4, 10),
			Priority: model.PriorityInternational, Status: model.StatusScheduled,
			RunwayID: model.Unassigned, CrewID: model.Unassigned, Cargo: true},
	}
	runways := []model.Runway{
		{ID: 0, Type: model.RunwayAllFlights, Available: false, NextAvailable: timeofday.New(12, 45)},
		{ID: 2, Type: model.RunwayCargoOnly, Available: true},
	}
	crew := []model.Crew{
		{ID: 2, Name: "Jane Doe", DutyMinutes: 210, LastFlightEnd: timeofday.New(12, 30),
			Qualifications: []string{"Boeing737", "AirbusA320"}},
	}
	return flights, runways, crew
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir, Limits{}, nil)
	flights, runways, crew := sampleState()
	require.NoError(t, s.Save(flights, runways, crew))

	snap, err := s.Load()
	require.NoError(t, err)
	assert.False(t, snap.Empty())
	assert.True(t, snap.Has(FlightsFile))
	assert.Equal(t, flights, snap.Flights)
	assert.Equal(t, runways, snap.Runways)
	assert.Equal(t, crew, snap.Crew)
}

func TestFixedRecordSizes(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir, Limits{}, nil)
	flights, runways, crew := sampleState()
	require.NoError(t, s.Save(flights, runways, crew))

	sizes := map[string]int{
		FlightsFile: binary.Size(flightRecord{}),
		RunwaysFile: binary.Size(runwayRecord{}),
		CrewFile:    binary.Size(crewRecord{}),
	}
	counts := map[string]int{FlightsFile: 2, RunwaysFile: 2, CrewFile: 1}
	for name, size := range sizes {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, int64(4+counts[name]*size), info.Size(), name)
	}
	assert.Equal(t, 4*fieldLen+2*8+5*4+4, sizes[FlightsFile])
}

func TestLoadMissingDir(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "absent"), Limits{}, nil)
	snap, err := s.Load()
	require.NoError(t, err)
	assert.True(t, snap.Empty())
	assert.Nil(t, snap.Flights)
}

func TestLoadPartial(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir, Limits{}, nil)
	_, _, crew := sampleState()
	require.NoError(t, s.Save(nil, nil, crew))
	require.NoError(t, os.Remove(filepath.Join(dir, RunwaysFile)))

	snap, err := s.Load()
	require.NoError(t, err)
	assert.True(t, snap.Has(CrewFile))
	assert.False(t, snap.Has(RunwaysFile))
	assert.Len(t, snap.Crew, 1)
	assert.Empty(t, snap.Flights)
}

func TestLoadTruncatesAboveCapacity(t *testing.T) {
	dir := t.TempDir()
	runways := make([]model.Runway, registry.MaxRunways+2)
	for i := range runways {
		runways[i] = model.Runway{ID: i, Available: true}
	}
	require.NoError(t, NewStore(dir, Limits{}, nil).Save(nil, runways, nil))

	snap, err := NewStore(dir, Limits{}, nil).Load()
	require.NoError(t, err)
	assert.Len(t, snap.Runways, registry.MaxRunways)
	assert.Equal(t, []Truncation{{File: RunwaysFile, Count: registry.MaxRunways + 2, Kept: registry.MaxRunways}}, snap.Truncated)

	snap, err = NewStore(dir, Limits{Runways: 3}, nil).Load()
	require.NoError(t, err)
	assert.Len(t, snap.Runways, 3)
	assert.Equal(t, 2, snap.Runways[2].ID)
}

func TestLoadHonoursConfiguredLimits(t *testing.T) {
	dir := t.TempDir()
	flights := make([]model.Flight, registry.MaxFlights+20)
	for i := range flights {
		flights[i] = model.Flight{ID: fmt.Sprintf("F%03d", i), Priority: model.PriorityDomestic,
			RunwayID: model.Unassigned, CrewID: model.Unassigned}
	}
	s := NewStore(dir, Limits{Flights: 150}, nil)
	require.NoError(t, s.Save(flights, nil, nil))

	snap, err := s.Load()
	require.NoError(t, err)
	assert.Len(t, snap.Flights, registry.MaxFlights+20)
	assert.Empty(t, snap.Truncated)
}

func TestLoadRejectsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, RunwaysFile)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, binary.Write(f, binary.LittleEndian, int32(3)))
	require.NoError(t, binary.Write(f, binary.LittleEndian, encodeRunway(model.Runway{ID: 1})))
	require.NoError(t, f.Close())

	_, err = NewStore(dir, Limits{}, nil).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record 1")

	bad := runwayRecord{ID: 4, NextAvailable: clock{Hour: 25}}
	f, err = os.Create(path)
	require.NoError(t, err)
	require.NoError(t, binary.Write(f, binary.LittleEndian, int32(1)))
	require.NoError(t, binary.Write(f, binary.LittleEndian, bad))
	require.NoError(t, f.Close())
	_, err = NewStore(dir, Limits{}, nil).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestSaveRejectsLongText(t *testing.T) {
	s := NewStore(t.TempDir(), Limits{}, nil)
	err := s.Save([]model.Flight{{ID: strings.Repeat("X", fieldLen)}}, nil, nil)
	require.Error(t, err)
}

func TestSaveClipsLongCrewText(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir, Limits{}, nil)
	flights, runways, _ := sampleState()
	quals := []string{"Boeing737", "Boeing747", "Boeing757", "Boeing767", "Boeing777", "Boeing787"}
	require.Greater(t, len(model.JoinQualifications(quals)), maxText)
	crew := []model.Crew{{ID: 1, Name: strings.Repeat("N", 60), Qualifications: quals}}

	require.NoError(t, s.Save(flights, runways, crew))
	snap, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, flights, snap.Flights)
	require.Len(t, snap.Crew, 1)
	assert.Equal(t, strings.Repeat("N", maxText), snap.Crew[0].Name)
	assert.Equal(t, quals[:5], snap.Crew[0].Qualifications)
}

func TestLoadRejectsUnknownEnums(t *testing.T) {
	flights, _, _ := sampleState()
	cases := map[string]func(*flightRecord){
		"priority": func(r *flightRecord) { r.Priority = 9 },
		"status":   func(r *flightRecord) { r.Status = -2 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			rec, err := encodeFlight(flights[0])
			require.NoError(t, err)
			mutate(&rec)
			_, err = rec.decode()
			require.Error(t, err)
			assert.Contains(t, err.Error(), name+" ")
		})
	}

	rec := encodeRunway(model.Runway{ID: 1, Type: model.RunwayCargoOnly})
	rec.Type = 7
	_, err := rec.decode()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "type 7 out of range")
}
