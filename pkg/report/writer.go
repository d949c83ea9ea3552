package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
)

// WriteJSON writes any report to w as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (r FlightReport) WriteText(w io.Writer) error {
	ew := &errWriter{w: w}
	ew.printf("FLIGHT REPORT\n=============\n\n")
	ew.printf("Total flights: %d\n", r.Total)
	ew.printf("Scheduled: %d\nDelayed: %d\nCancelled: %d\nEmergency: %d\n", r.Scheduled, r.Delayed, r.Cancelled, r.Emergency)
	ew.printf("Delay minutes: mean %.1f, std dev %.1f, max %.0f\n\n", r.Delay.Mean, r.Delay.StdDev, r.Delay.Max)
	ew.printf("Flight Details:\n")
	for _, f := range r.Flights {
		ew.printf("%s: %s to %s, %s (%s)\n", f.ID, f.Origin, f.Destination, f.Departure, f.Status)
	}
	return ew.err
}

func (r FlightReport) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"flight_id", "origin", "destination", "departure", "status"}); err != nil {
		return err
	}
	for _, f := range r.Flights {
		if err := cw.Write([]string{f.ID, f.Origin, f.Destination, f.Departure, f.Status}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (r RunwayReport) WriteText(w io.Writer) error {
	ew := &errWriter{w: w}
	ew.printf("RUNWAY UTILIZATION REPORT\n========================\n\n")
	for _, rw := range r.Runways {
		state := "Available"
		if !rw.Available {
			state = "In Use"
		}
		ew.printf("Runway %d (%s): %s\n", rw.ID, rw.Type, state)
		if !rw.Available {
			ew.printf("  Next available at %s\n", rw.NextAvailable)
		}
		ew.printf("\n")
	}
	return ew.err
}

func (r RunwayReport) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"runway_id", "type", "available", "next_available"}); err != nil {
		return err
	}
	for _, rw := range r.Runways {
		rec := []string{strconv.Itoa(rw.ID), rw.Type, strconv.FormatBool(rw.Available), rw.NextAvailable}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (r CrewReport) WriteText(w io.Writer) error {
	ew := &errWriter{w: w}
	ew.printf("CREW STATUS REPORT\n==================\n\n")
	ew.printf("Available crew: %d\nOn duty: %d\n", r.Available, r.OnDuty)
	ew.printf("Duty minutes: mean %.1f, std dev %.1f, max %.0f\n\n", r.Duty.Mean, r.Duty.StdDev, r.Duty.Max)
	ew.printf("Crew approaching duty limits:\n")
	if len(r.Approaching) == 0 {
		ew.printf("None\n")
	}
	for _, c := range r.Approaching {
		ew.printf("%s: %d/%d minutes\n", c.Name, c.DutyMinutes, c.Cap)
	}
	return ew.err
}

func (r CrewReport) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"crew_id", "name", "duty_minutes", "cap"}); err != nil {
		return err
	}
	for _, c := range r.Approaching {
		rec := []string{strconv.Itoa(c.ID), c.Name, strconv.Itoa(c.DutyMinutes), strconv.Itoa(c.Cap)}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteScheduleText renders rows as an aligned table.
func WriteScheduleText(w io.Writer, rows []ScheduleRow) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	ew := &errWriter{w: tw}
	ew.printf("Flight ID\tDeparture\tArrival\tRoute\tStatus\tRunway\tCrew\n")
	ew.printf("---------\t---------\t-------\t-----\t------\t------\t----\n")
	for _, r := range rows {
		ew.printf("%s\t%s\t%s\t%s to %s\t%s\t%s\t%s\n",
			r.FlightID, r.Departure, r.Arrival, r.Origin, r.Destination, r.Status, r.Runway, r.Crew)
	}
	if ew.err != nil {
		return ew.err
	}
	return tw.Flush()
}

// WriteScheduleCSV writes rows with a header line.
func WriteScheduleCSV(w io.Writer, rows []ScheduleRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"flight_id", "departure", "arrival", "origin", "destination", "status", "runway", "crew"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.FlightID, r.Departure, r.Arrival, r.Origin, r.Destination, r.Status, r.Runway, r.Crew}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
