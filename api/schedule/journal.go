package schedule

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/kilianp07/flightops/core/journal"
)

// NewJournalHandler returns an HTTP handler exposing journal records via
// GET /api/journal, filtered by start, end (RFC3339), flight_id and kind.
func NewJournalHandler(store journal.LogStore) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := journal.LogQuery{}
		if s := r.URL.Query().Get("start"); s != "" {
			t, err := time.Parse(time.RFC3339, s)
			if err != nil {
				http.Error(w, "invalid start", http.StatusBadRequest)
				return
			}
			q.Start = t
		}
		if s := r.URL.Query().Get("end"); s != "" {
			t, err := time.Parse(time.RFC3339, s)
			if err != nil {
				http.Error(w, "invalid end", http.StatusBadRequest)
				return
			}
			q.End = t
		}
		q.FlightID = r.URL.Query().Get("flight_id")
		q.Kind = journal.Kind(r.URL.Query().Get("kind"))
		records, err := store.Query(r.Context(), q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if records == nil {
			records = []journal.LogRecord{}
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(records); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}
