// Package schedule exposes the scheduling engine over HTTP. Reads return
// the committed registries; commands are forwarded to the engine, which
// serialises them.
package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kilianp07/flightops/core/journal"
	"github.com/kilianp07/flightops/core/logger"
	"github.com/kilianp07/flightops/core/model"
	"github.com/kilianp07/flightops/core/notify"
	"github.com/kilianp07/flightops/core/registry"
	"github.com/kilianp07/flightops/core/scheduling"
)

// Engine is the command and query surface the router drives.
type Engine interface {
	Config() scheduling.Config
	Flights() []model.Flight
	Runways() []model.Runway
	Crew() []model.Crew
	Notifications() []notify.Notification

	FindFlight(id string) (model.Flight, error)
	SearchFlights(substr string) []model.Flight
	AddFlight(ctx context.Context, spec registry.FlightSpec) (model.Flight, error)
	DelayFlight(ctx context.Context, id string, minutes int) (model.Flight, error)
	DeleteFlight(ctx context.Context, id string) error

	AssignRunways(ctx context.Context) scheduling.PassResult
	ScheduleCrew(ctx context.Context) scheduling.PassResult
	Allocate(ctx context.Context) (scheduling.PassResult, scheduling.PassResult)
	ClearRunwayAssignments(ctx context.Context)
	ClearCrewAssignments(ctx context.Context)

	WeatherDelay(ctx context.Context, minutes int) (model.Flight, error)
	EmergencyInsert(ctx context.Context) (model.Flight, error)
	CancelFlight(ctx context.Context) (model.Flight, error)
	CancelFlightID(ctx context.Context, id string) (model.Flight, error)
	Reschedule(ctx context.Context) (scheduling.PassResult, scheduling.PassResult, error)
}

// Options configures the router.
type Options struct {
	// Token, when set, must be presented as "Bearer <token>" on command
	// and journal endpoints.
	Token   string
	Journal journal.LogStore
	Logger  logger.Logger
}

type server struct {
	eng Engine
	log logger.Logger
}

// NewRouter builds the HTTP API around eng.
func NewRouter(eng Engine, opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = logger.Nop{}
	}
	s := &server{eng: eng, log: opts.Logger}
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/flights", s.handleFlights)
		r.Get("/flights/{id}", s.handleFlight)
		r.Get("/runways", func(w http.ResponseWriter, _ *http.Request) { writeJSON(w, http.StatusOK, s.eng.Runways()) })
		r.Get("/crew", func(w http.ResponseWriter, _ *http.Request) { writeJSON(w, http.StatusOK, s.eng.Crew()) })
		r.Get("/notifications", s.handleNotifications)
		r.Get("/schedule", s.handleSchedule)
		r.Get("/reports/{kind}", s.handleReport)

		r.Group(func(r chi.Router) {
			r.Use(requireToken(opts.Token))
			if opts.Journal != nil {
				r.Method(http.MethodGet, "/journal", NewJournalHandler(opts.Journal))
			}
			r.Post("/flights", s.handleAddFlight)
			r.Post("/flights/{id}/delay", s.handleDelayFlight)
			r.Post("/flights/{id}/cancel", s.handleCancelFlight)
			r.Delete("/flights/{id}", s.handleDeleteFlight)
			r.Post("/allocate/{target}", s.handleAllocate)
			r.Post("/clear/{target}", s.handleClear)
			r.Post("/disruptions/{kind}", s.handleDisruption)
			r.Post("/reschedule", s.handleReschedule)
		})
	})
	return r
}

func requireToken(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token != "" && r.Header.Get("Authorization") != "Bearer "+token {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (s *server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	entries := s.eng.Notifications()
	if v := r.URL.Query().Get("latest"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "latest must be a non-negative integer")
			return
		}
		if n < len(entries) {
			entries = entries[len(entries)-n:]
		}
	}
	writeJSON(w, http.StatusOK, entries)
}

// statusFor maps engine errors onto HTTP status codes.
func statusFor(err error) int {
	var (
		verr *registry.ValidationError
		cerr *registry.CapacityError
		nerr *registry.NotFoundError
	)
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.As(err, &nerr):
		return http.StatusNotFound
	case errors.As(err, &cerr), errors.Is(err, scheduling.ErrNoFlights):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func (s *server) fail(w http.ResponseWriter, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		s.log.Errorf("api: %v", err)
	}
	writeError(w, code, err.Error())
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
