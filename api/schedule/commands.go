package schedule

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kilianp07/flightops/core/scheduling"
)

type passResponse struct {
	Runway *scheduling.PassResult `json:"runway,omitempty"`
	Crew   *scheduling.PassResult `json:"crew,omitempty"`
}

func (s *server) handleAllocate(w http.ResponseWriter, r *http.Request) {
	var resp passResponse
	switch chi.URLParam(r, "target") {
	case "runways":
		p := s.eng.AssignRunways(r.Context())
		resp.Runway = &p
	case "crew":
		p := s.eng.ScheduleCrew(r.Context())
		resp.Crew = &p
	case "all":
		rp, cp := s.eng.Allocate(r.Context())
		resp.Runway, resp.Crew = &rp, &cp
	default:
		writeError(w, http.StatusNotFound, "unknown allocation target")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleClear(w http.ResponseWriter, r *http.Request) {
	switch chi.URLParam(r, "target") {
	case "runways":
		s.eng.ClearRunwayAssignments(r.Context())
	case "crew":
		s.eng.ClearCrewAssignments(r.Context())
	default:
		writeError(w, http.StatusNotFound, "unknown clear target")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleDisruption(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	switch chi.URLParam(r, "kind") {
	case "weather":
		var req delayRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "bad request: "+err.Error())
			return
		}
		f, err := s.eng.WeatherDelay(ctx, req.Minutes)
		if err != nil {
			s.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, f)
	case "emergency":
		f, err := s.eng.EmergencyInsert(ctx)
		if err != nil {
			s.fail(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, f)
	case "cancel":
		f, err := s.eng.CancelFlight(ctx)
		if err != nil {
			s.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, f)
	default:
		writeError(w, http.StatusNotFound, "unknown disruption")
	}
}

func (s *server) handleReschedule(w http.ResponseWriter, r *http.Request) {
	rp, cp, err := s.eng.Reschedule(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, passResponse{Runway: &rp, Crew: &cp})
}
