package schedule

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kilianp07/flightops/pkg/report"
)

func (s *server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	rows := report.Schedule(s.eng.Flights(), s.eng.Crew())
	switch r.URL.Query().Get("format") {
	case "", "json":
		writeJSON(w, http.StatusOK, rows)
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		if err := report.WriteScheduleCSV(w, rows); err != nil {
			s.log.Errorf("api: schedule csv: %v", err)
		}
	case "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := report.WriteScheduleText(w, rows); err != nil {
			s.log.Errorf("api: schedule text: %v", err)
		}
	default:
		writeError(w, http.StatusBadRequest, "unknown format")
	}
}

func (s *server) handleReport(w http.ResponseWriter, r *http.Request) {
	switch chi.URLParam(r, "kind") {
	case "flights":
		writeJSON(w, http.StatusOK, report.Flights(s.eng.Flights()))
	case "runways":
		writeJSON(w, http.StatusOK, report.Runways(s.eng.Runways()))
	case "crew":
		writeJSON(w, http.StatusOK, report.Crew(s.eng.Crew(), s.eng.Config().MaxDutyMinutes))
	default:
		writeError(w, http.StatusNotFound, "unknown report")
	}
}
