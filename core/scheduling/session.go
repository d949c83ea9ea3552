// Package scheduling is the flight resource engine. A Session owns the
// flight, runway and crew registries together with the notification feed
// and runs every command against them synchronously. Sessions do no
// locking: callers must issue one command at a time.
package scheduling

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/flightops/core/journal"
	"github.com/kilianp07/flightops/core/logger"
	"github.com/kilianp07/flightops/core/metrics"
	"github.com/kilianp07/flightops/core/model"
	"github.com/kilianp07/flightops/core/monitoring"
	"github.com/kilianp07/flightops/core/notify"
	"github.com/kilianp07/flightops/core/registry"
	"github.com/kilianp07/flightops/core/timeofday"
	"github.com/kilianp07/flightops/internal/eventbus"
)

// ErrNoFlights is returned by random disruptions and reschedule when the
// flight registry is empty.
var ErrNoFlights = errors.New("no flights registered")

// Session is one scheduling context.
type Session struct {
	cfg     Config
	flights *registry.Flights
	runways *registry.Runways
	crew    *registry.Crews
	notes   *notify.Log

	runwayAlloc RunwayAllocator
	crewAlloc   CrewAllocator

	rng     RandomSource
	clock   timeofday.Clock
	now     func() time.Time
	bus     *eventbus.Bus[notify.Notification]
	log     logger.Logger
	metrics metrics.MetricsSink
	journal journal.LogStore
	monitor monitoring.Monitor
}

// Option customises a Session.
type Option func(*Session)

// WithRandom pins the source used by weather delay, emergency ids and
// cancellation.
func WithRandom(r RandomSource) Option { return func(s *Session) { s.rng = r } }

// WithClock sets the time-of-day clock used for notifications and
// emergency departures.
func WithClock(c timeofday.Clock) Option { return func(s *Session) { s.clock = c } }

// WithWallClock sets the timestamp source for journal and metrics records.
func WithWallClock(now func() time.Time) Option { return func(s *Session) { s.now = now } }

func WithLogger(l logger.Logger) Option { return func(s *Session) { s.log = l } }

func WithMetrics(m metrics.MetricsSink) Option { return func(s *Session) { s.metrics = m } }

func WithJournal(j journal.LogStore) Option { return func(s *Session) { s.journal = j } }

func WithMonitor(m monitoring.Monitor) Option { return func(s *Session) { s.monitor = m } }

// WithScorer replaces the crew scorer.
func WithScorer(sc Scorer) Option { return func(s *Session) { s.crewAlloc.Scorer = sc } }

// WithNotificationBus forwards every notification to bus.
func WithNotificationBus(b *eventbus.Bus[notify.Notification]) Option {
	return func(s *Session) { s.bus = b }
}

// NewSession builds an empty session. Zero config fields take the engine
// defaults.
func NewSession(cfg Config, opts ...Option) (*Session, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		cfg:     cfg,
		flights: registry.NewFlights(cfg.MaxFlights),
		runways: registry.NewRunways(cfg.MaxRunways),
		crew:    registry.NewCrews(cfg.MaxCrew),
		runwayAlloc: RunwayAllocator{
			BufferMinutes:  cfg.RunwayBufferMinutes,
			PenaltyMinutes: cfg.RunwayPenaltyMinutes,
		},
		crewAlloc: CrewAllocator{
			Scorer: QualificationScorer{
				ExactMatch:     ExactMatchScore,
				FamilyMatch:    FamilyMatchScore,
				MaxDutyMinutes: cfg.MaxDutyMinutes,
			},
			MaxDutyMinutes: cfg.MaxDutyMinutes,
			MinRestMinutes: cfg.MinRestMinutes,
			PenaltyMinutes: cfg.CrewPenaltyMinutes,
		},
		clock:   timeofday.SystemClock{},
		now:     time.Now,
		log:     logger.Nop{},
		metrics: metrics.NopSink{},
		journal: journal.NopStore{},
		monitor: monitoring.NopMonitor{},
	}
	for _, o := range opts {
		o(s)
	}
	if s.rng == nil {
		s.rng = NewRandom(cfg.Seed)
	}
	s.notes = notify.NewLog(cfg.NotificationCapacity, s.clock)
	if s.bus != nil {
		s.notes.Attach(s.bus)
	}
	return s, nil
}

// Config returns the effective configuration.
func (s *Session) Config() Config { return s.cfg }

// Flights returns a copy of every flight in registry order.
func (s *Session) Flights() []model.Flight { return s.flights.All() }

// Runways returns a copy of every runway in registry order.
func (s *Session) Runways() []model.Runway { return s.runways.All() }

// Crew returns a copy of every crew member in registry order.
func (s *Session) Crew() []model.Crew { return s.crew.All() }

// Notifications returns the feed, oldest first.
func (s *Session) Notifications() []notify.Notification { return s.notes.Entries() }

// Notes exposes the feed so collaborators can add their own entries.
func (s *Session) Notes() *notify.Log { return s.notes }

// CrewName returns the name of the crew member with the given id.
func (s *Session) CrewName(id int) (string, bool) {
	c, ok := s.crew.Get(id)
	if !ok {
		return "", false
	}
	return c.Name, true
}

// AddRunway registers a runway.
func (s *Session) AddRunway(rw model.Runway) error { return s.runways.Add(rw) }

// AddCrew registers a crew member.
func (s *Session) AddCrew(c model.Crew) error { return s.crew.Add(c) }

// Restore replaces the registries with previously saved state. On error the
// session is left empty.
func (s *Session) Restore(flights []model.Flight, runways []model.Runway, crew []model.Crew) error {
	s.flights.Clear()
	s.runways.Clear()
	s.crew.Clear()
	for _, rw := range runways {
		if err := s.runways.Add(rw); err != nil {
			s.runways.Clear()
			return err
		}
	}
	for _, c := range crew {
		if err := s.crew.Add(c); err != nil {
			s.runways.Clear()
			s.crew.Clear()
			return err
		}
	}
	for _, f := range flights {
		if err := s.flights.Add(f); err != nil {
			s.flights.Clear()
			s.runways.Clear()
			s.crew.Clear()
			return err
		}
	}
	s.recordSizes()
	return nil
}

// record appends to the journal. Journal failures never fail a command.
func (s *Session) record(ctx context.Context, rec journal.LogRecord) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	rec.Timestamp = s.now()
	if err := s.journal.Append(ctx, rec); err != nil {
		s.log.Errorf("journal append %s: %v", rec.Kind, err)
		monitoring.Capture(s.monitor, "journal", err)
	}
}

func (s *Session) recordPass(ctx context.Context, res PassResult, elapsed time.Duration) {
	kind := string(res.Kind)
	passDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
	assignmentsTotal.WithLabelValues(kind).Add(float64(len(res.Assignments)))
	allocationFailures.WithLabelValues(kind).Add(float64(len(res.Failures)))

	ts := s.now()
	recs := make([]metrics.PassRecord, 0, len(res.Assignments)+len(res.Failures))
	rec := journal.LogRecord{
		ID:          res.ID,
		Kind:        journal.KindRunwayPass,
		Assignments: make(map[string]int, len(res.Assignments)),
		Failures:    make(map[string]int, len(res.Failures)),
	}
	if res.Kind == PassCrew {
		rec.Kind = journal.KindCrewPass
	}
	for _, a := range res.Assignments {
		recs = append(recs, metrics.PassRecord{PassID: res.ID, Kind: kind, FlightID: a.FlightID, ResourceID: a.ResourceID, Score: a.Score, Assigned: true, Time: ts})
		rec.Assignments[a.FlightID] = a.ResourceID
	}
	for _, f := range res.Failures {
		recs = append(recs, metrics.PassRecord{PassID: res.ID, Kind: kind, FlightID: f.FlightID, ResourceID: model.Unassigned, PenaltyMinutes: f.PenaltyMinutes, Time: ts})
		rec.Failures[f.FlightID] = f.PenaltyMinutes
	}
	if len(recs) > 0 {
		if err := s.metrics.RecordPass(recs); err != nil {
			s.log.Errorf("metrics sink: %v", err)
			monitoring.Capture(s.monitor, "metrics", err)
		}
	}
	s.record(ctx, rec)
	s.log.Infow("allocation pass", map[string]any{
		"pass_id":     res.ID,
		"kind":        kind,
		"assignments": len(res.Assignments),
		"failures":    len(res.Failures),
	})
}

func (s *Session) recordDisruption(kind, flightID string, minutes int) {
	disruptionsTotal.WithLabelValues(kind).Inc()
	dr, ok := s.metrics.(metrics.DisruptionRecorder)
	if !ok {
		return
	}
	ev := metrics.DisruptionEvent{Kind: kind, FlightID: flightID, Minutes: minutes, Time: s.now()}
	if err := dr.RecordDisruption(ev); err != nil {
		s.log.Errorf("metrics sink: %v", err)
		monitoring.Capture(s.monitor, "metrics", err)
	}
}

func (s *Session) recordSizes() {
	byStatus := map[string]int{}
	for _, st := range []model.Status{model.StatusScheduled, model.StatusDelayed, model.StatusCancelled, model.StatusEmergency} {
		byStatus[st.String()] = 0
	}
	for i := 0; i < s.flights.Len(); i++ {
		byStatus[s.flights.At(i).Status.String()]++
	}
	for st, n := range byStatus {
		flightsGauge.WithLabelValues(st).Set(float64(n))
	}
	rr, ok := s.metrics.(metrics.RegistrySizeRecorder)
	if !ok {
		return
	}
	sizes := metrics.RegistrySizes{
		Flights:   s.flights.Len(),
		Runways:   s.runways.Len(),
		Crew:      s.crew.Len(),
		ByStatus:  byStatus,
		Timestamp: s.now(),
	}
	for i := 0; i < s.runways.Len(); i++ {
		if !s.runways.At(i).Available {
			sizes.InUse++
		}
	}
	for i := 0; i < s.crew.Len(); i++ {
		if !s.crew.At(i).Available {
			sizes.OnDuty++
		}
	}
	if err := rr.RecordRegistrySizes(sizes); err != nil {
		s.log.Errorf("metrics sink: %v", err)
		monitoring.Capture(s.monitor, "metrics", err)
	}
}
