package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/flightops/core/model"
	"github.com/kilianp07/flightops/core/timeofday"
)

func fixture() ([]model.Flight, []model.Runway, []model.Crew) {
	flights := []model.Flight{
		{ID: "AA1", Origin: "JFK", Destination: "LAX", Departure: timeofday.New(9, 0), Arrival: timeofday.New(11, 0),
			Status: model.StatusScheduled, RunwayID: 0, CrewID: 4},
		{ID: "BA2", Origin: "LHR", Destination: "JFK", Departure: timeofday.New(10, 30), Arrival: timeofday.New(18, 0),
			Status: model.StatusDelayed, DelayMinutes: 30, RunwayID: model.Unassigned, CrewID: model.Unassigned},
		{ID: "CX3", Origin: "HKG", Destination: "SFO", Departure: timeofday.New(12, 0), Arrival: timeofday.New(23, 0),
			Status: model.StatusCancelled, RunwayID: model.Unassigned, CrewID: model.Unassigned},
		{ID: "EMG4", Origin: "UNKNOWN", Destination: "THIS AIRPORT", Departure: timeofday.New(9, 5), Arrival: timeofday.New(9, 10),
			Status: model.StatusEmergency, RunwayID: 1, CrewID: 9},
	}
	runways := []model.Runway{
		{ID: 0, Type: model.RunwayAllFlights, NextAvailable: timeofday.New(11, 15)},
		{ID: 1, Type: model.RunwayInternationalOnly, Available: true},
	}
	crew := []model.Crew{
		{ID: 4, Name: "Ana Lopez", DutyMinutes: 120},
		{ID: 5, Name: "Ben Ito", DutyMinutes: 390, Available: true},
		{ID: 6, Name: "Cy Kim", DutyMinutes: 384, Available: true},
	}
	return flights, runways, crew
}

func TestFlightsReport(t *testing.T) {
	flights, _, _ := fixture()
	rep := Flights(flights)
	assert.Equal(t, 4, rep.Total)
	assert.Equal(t, 1, rep.Scheduled)
	assert.Equal(t, 1, rep.Delayed)
	assert.Equal(t, 1, rep.Cancelled)
	assert.Equal(t, 1, rep.Emergency)
	assert.InDelta(t, 7.5, rep.Delay.Mean, 1e-9)
	assert.InDelta(t, 30, rep.Delay.Max, 1e-9)

	var buf bytes.Buffer
	require.NoError(t, rep.WriteText(&buf))
	assert.Contains(t, buf.String(), "Total flights: 4")
	assert.Contains(t, buf.String(), "BA2: LHR to JFK, 10:30 (Delayed)")
}

func TestRunwaysReport(t *testing.T) {
	_, runways, _ := fixture()
	rep := Runways(runways)
	assert.Equal(t, 1, rep.Available)
	assert.Equal(t, 1, rep.InUse)
	assert.Equal(t, "11:15", rep.Runways[0].NextAvailable)
	assert.Empty(t, rep.Runways[1].NextAvailable)

	var buf bytes.Buffer
	require.NoError(t, rep.WriteText(&buf))
	assert.Contains(t, buf.String(), "Runway 0 (All Flights): In Use\n  Next available at 11:15")
	assert.Contains(t, buf.String(), "Runway 1 (International Only): Available")
}

func TestCrewReportThresholdIsStrict(t *testing.T) {
	_, _, crew := fixture()
	rep := Crew(crew, 480)
	assert.Equal(t, 2, rep.Available)
	assert.Equal(t, 1, rep.OnDuty)
	require.Len(t, rep.Approaching, 1)
	assert.Equal(t, "Ben Ito", rep.Approaching[0].Name)

	var buf bytes.Buffer
	require.NoError(t, rep.WriteText(&buf))
	assert.Contains(t, buf.String(), "Ben Ito: 390/480 minutes")

	empty := Crew(nil, 480)
	buf.Reset()
	require.NoError(t, empty.WriteText(&buf))
	assert.Contains(t, buf.String(), "None")
	assert.Zero(t, empty.Duty.StdDev)
}

func TestSchedule(t *testing.T) {
	flights, _, crew := fixture()
	rows := Schedule(flights, crew)
	require.Len(t, rows, 4)
	assert.Equal(t, ScheduleRow{FlightID: "AA1", Departure: "09:00", Arrival: "11:00", Origin: "JFK", Destination: "LAX",
		Status: "Scheduled", Runway: "Rwy 0", Crew: "Ana Lopez"}, rows[0])
	assert.Equal(t, "Delayed (30)", rows[1].Status)
	assert.Equal(t, "None", rows[1].Runway)
	assert.Equal(t, "None", rows[1].Crew)
	assert.Equal(t, "#9", rows[3].Crew)

	var buf bytes.Buffer
	require.NoError(t, WriteScheduleText(&buf, rows))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[0], "Flight ID"))

	buf.Reset()
	require.NoError(t, WriteScheduleCSV(&buf, rows))
	recs, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, recs, 5)
	assert.Equal(t, "JFK", recs[1][3])
}

func TestCSVWriters(t *testing.T) {
	flights, runways, crew := fixture()
	var buf bytes.Buffer
	require.NoError(t, Flights(flights).WriteCSV(&buf))
	assert.Contains(t, buf.String(), "flight_id,origin")
	buf.Reset()
	require.NoError(t, Runways(runways).WriteCSV(&buf))
	assert.Contains(t, buf.String(), "0,All Flights,false,11:15")
	buf.Reset()
	require.NoError(t, Crew(crew, 480).WriteCSV(&buf))
	assert.Contains(t, buf.String(), "5,Ben Ito,390,480")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, Crew(nil, 480)))
	assert.Contains(t, buf.String(), `"approaching_limit": []`)
}
