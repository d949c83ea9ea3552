// Package report summarises the registries for operators: flight status
// counts, runway utilisation, crew duty load and the schedule view.
package report

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/flightops/core/model"
)

// DutyWarningRatio is the share of the duty cap above which a crew member
// is listed as approaching the limit.
const DutyWarningRatio = 0.8

// Summary is the mean and standard deviation of a sample.
type Summary struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Max    float64 `json:"max"`
}

func summarize(xs []float64) Summary {
	if len(xs) == 0 {
		return Summary{}
	}
	s := Summary{Mean: stat.Mean(xs, nil)}
	if len(xs) > 1 {
		s.StdDev = stat.StdDev(xs, nil)
	}
	for _, x := range xs {
		if x > s.Max {
			s.Max = x
		}
	}
	return s
}

// FlightLine is one flight in the flight report.
type FlightLine struct {
	ID          string `json:"id"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Departure   string `json:"departure"`
	Status      string `json:"status"`
}

// FlightReport counts flights per status.
type FlightReport struct {
	Total     int          `json:"total"`
	Scheduled int          `json:"scheduled"`
	Delayed   int          `json:"delayed"`
	Cancelled int          `json:"cancelled"`
	Emergency int          `json:"emergency"`
	Delay     Summary      `json:"delay_minutes"`
	Flights   []FlightLine `json:"flights"`
}

func Flights(flights []model.Flight) FlightReport {
	rep := FlightReport{Total: len(flights), Flights: make([]FlightLine, 0, len(flights))}
	delays := make([]float64, 0, len(flights))
	for _, f := range flights {
		switch f.Status {
		case model.StatusScheduled:
			rep.Scheduled++
		case model.StatusDelayed:
			rep.Delayed++
		case model.StatusCancelled:
			rep.Cancelled++
		case model.StatusEmergency:
			rep.Emergency++
		}
		delays = append(delays, float64(f.DelayMinutes))
		rep.Flights = append(rep.Flights, FlightLine{
			ID:          f.ID,
			Origin:      f.Origin,
			Destination: f.Destination,
			Departure:   f.Departure.String(),
			Status:      f.Status.String(),
		})
	}
	rep.Delay = summarize(delays)
	return rep
}

// RunwayLine is one runway in the utilisation report.
type RunwayLine struct {
	ID            int    `json:"id"`
	Type          string `json:"type"`
	Available     bool   `json:"available"`
	NextAvailable string `json:"next_available,omitempty"`
}

// RunwayReport lists runway utilisation.
type RunwayReport struct {
	Available int          `json:"available"`
	InUse     int          `json:"in_use"`
	Runways   []RunwayLine `json:"runways"`
}

func Runways(runways []model.Runway) RunwayReport {
	rep := RunwayReport{Runways: make([]RunwayLine, 0, len(runways))}
	for _, rw := range runways {
		line := RunwayLine{ID: rw.ID, Type: rw.Type.String(), Available: rw.Available}
		if rw.Available {
			rep.Available++
		} else {
			rep.InUse++
			line.NextAvailable = rw.NextAvailable.String()
		}
		rep.Runways = append(rep.Runways, line)
	}
	return rep
}

// CrewDuty is a crew member close to the duty cap.
type CrewDuty struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	DutyMinutes int    `json:"duty_minutes"`
	Cap         int    `json:"cap"`
}

// CrewReport counts available and on-duty crew.
type CrewReport struct {
	Available   int        `json:"available"`
	OnDuty      int        `json:"on_duty"`
	Duty        Summary    `json:"duty_minutes"`
	Approaching []CrewDuty `json:"approaching_limit"`
}

// Crew builds the crew report. A member whose duty exceeds
// DutyWarningRatio of maxDuty is listed as approaching the limit.
func Crew(crew []model.Crew, maxDuty int) CrewReport {
	rep := CrewReport{Approaching: []CrewDuty{}}
	duty := make([]float64, 0, len(crew))
	limit := float64(maxDuty) * DutyWarningRatio
	for _, c := range crew {
		if c.Available {
			rep.Available++
		} else {
			rep.OnDuty++
		}
		duty = append(duty, float64(c.DutyMinutes))
		if float64(c.DutyMinutes) > limit {
			rep.Approaching = append(rep.Approaching, CrewDuty{ID: c.ID, Name: c.Name, DutyMinutes: c.DutyMinutes, Cap: maxDuty})
		}
	}
	rep.Duty = summarize(duty)
	return rep
}

// ScheduleRow is one line of the schedule view.
type ScheduleRow struct {
	FlightID    string `json:"flight_id"`
	Departure   string `json:"departure"`
	Arrival     string `json:"arrival"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Status      string `json:"status"`
	Runway      string `json:"runway"`
	Crew        string `json:"crew"`
}

// Schedule builds one row per flight in registry order. Delayed flights
// show their accumulated delay; unassigned resources show "None".
func Schedule(flights []model.Flight, crew []model.Crew) []ScheduleRow {
	names := make(map[int]string, len(crew))
	for _, c := range crew {
		names[c.ID] = c.Name
	}
	rows := make([]ScheduleRow, 0, len(flights))
	for _, f := range flights {
		row := ScheduleRow{
			FlightID:    f.ID,
			Departure:   f.Departure.String(),
			Arrival:     f.Arrival.String(),
			Origin:      f.Origin,
			Destination: f.Destination,
			Status:      f.Status.String(),
			Runway:      "None",
			Crew:        "None",
		}
		if f.Status == model.StatusDelayed {
			row.Status = fmt.Sprintf("Delayed (%d)", f.DelayMinutes)
		}
		if f.HasRunway() {
			row.Runway = fmt.Sprintf("Rwy %d", f.RunwayID)
		}
		if f.HasCrew() {
			if n, ok := names[f.CrewID]; ok {
				row.Crew = n
			} else {
				row.Crew = fmt.Sprintf("#%d", f.CrewID)
			}
		}
		rows = append(rows, row)
	}
	return rows
}
