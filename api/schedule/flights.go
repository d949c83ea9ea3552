package schedule

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kilianp07/flightops/core/registry"
)

type delayRequest struct {
	Minutes int `json:"minutes"`
}

func (s *server) handleFlights(w http.ResponseWriter, r *http.Request) {
	if q := r.URL.Query().Get("q"); q != "" {
		writeJSON(w, http.StatusOK, s.eng.SearchFlights(q))
		return
	}
	writeJSON(w, http.StatusOK, s.eng.Flights())
}

func (s *server) handleFlight(w http.ResponseWriter, r *http.Request) {
	f, err := s.eng.FindFlight(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (s *server) handleAddFlight(w http.ResponseWriter, r *http.Request) {
	var spec registry.FlightSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		writeError(w, http.StatusBadRequest, "bad request: "+err.Error())
		return
	}
	f, err := s.eng.AddFlight(r.Context(), spec)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

func (s *server) handleDelayFlight(w http.ResponseWriter, r *http.Request) {
	var req delayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request: "+err.Error())
		return
	}
	f, err := s.eng.DelayFlight(r.Context(), chi.URLParam(r, "id"), req.Minutes)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (s *server) handleCancelFlight(w http.ResponseWriter, r *http.Request) {
	f, err := s.eng.CancelFlightID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (s *server) handleDeleteFlight(w http.ResponseWriter, r *http.Request) {
	if err := s.eng.DeleteFlight(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
