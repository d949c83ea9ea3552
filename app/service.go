// Package app wires the scheduling engine to its configuration, persistence
// and outbound adapters, and serialises every command behind one mutex.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kilianp07/flightops/api/schedule"
	"github.com/kilianp07/flightops/config"
	"github.com/kilianp07/flightops/core/journal"
	"github.com/kilianp07/flightops/core/logger"
	coremetrics "github.com/kilianp07/flightops/core/metrics"
	"github.com/kilianp07/flightops/core/model"
	coremon "github.com/kilianp07/flightops/core/monitoring"
	"github.com/kilianp07/flightops/core/notify"
	"github.com/kilianp07/flightops/core/registry"
	"github.com/kilianp07/flightops/core/scheduling"
	"github.com/kilianp07/flightops/core/seed"
	infralogger "github.com/kilianp07/flightops/infra/logger"
	"github.com/kilianp07/flightops/infra/metrics"
	"github.com/kilianp07/flightops/infra/monitoring"
	"github.com/kilianp07/flightops/infra/mqtt"
	"github.com/kilianp07/flightops/infra/snapshot"
	"github.com/kilianp07/flightops/internal/eventbus"
)

// Service owns a scheduling session and its collaborators.
type Service struct {
	mu      sync.Mutex
	cfg     *config.Config
	sess    *scheduling.Session
	bus     *eventbus.Bus[notify.Notification]
	sink    coremetrics.MetricsSink
	journal journal.LogStore
	snap    *snapshot.Store
	pub     *mqtt.Publisher
	monitor coremon.Monitor
	log     logger.Logger

	closeOnce sync.Once
	closeErr  error
}

// New builds a Service from the configuration and loads the initial state:
// the snapshot when one exists, the roster otherwise.
func New(cfg *config.Config) (*Service, error) {
	log := infralogger.New("service")
	mon, err := monitoring.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		return nil, fmt.Errorf("sentry: %w", err)
	}
	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	log.Infof("metrics sinks ready, recording passes and %v", coremetrics.Recorders(sink))
	store, err := journal.Open(cfg.Journal)
	if err != nil {
		return nil, fmt.Errorf("journal: %w", err)
	}
	bus := eventbus.New[notify.Notification](256)
	sess, err := scheduling.NewSession(cfg.Engine,
		scheduling.WithLogger(infralogger.New("scheduling")),
		scheduling.WithMetrics(sink),
		scheduling.WithJournal(store),
		scheduling.WithMonitor(mon),
		scheduling.WithNotificationBus(bus),
	)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("session: %w", err)
	}
	s := &Service{
		cfg:     cfg,
		sess:    sess,
		bus:     bus,
		sink:    sink,
		journal: store,
		monitor: mon,
		log:     log,
	}
	if !cfg.Snapshot.Disabled {
		s.snap = snapshot.NewStore(cfg.Snapshot.Dir, snapshot.Limits{
			Flights: cfg.Engine.MaxFlights,
			Runways: cfg.Engine.MaxRunways,
			Crew:    cfg.Engine.MaxCrew,
		}, infralogger.New("snapshot"))
	}
	if cfg.MQTT.Enabled {
		pub, err := mqtt.NewPublisher(cfg.MQTT, mon)
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		s.pub = pub
	}
	if err := s.loadState(); err != nil {
		s.release()
		return nil, err
	}
	return s, nil
}

func (s *Service) loadState() error {
	roster, err := seed.Load(s.cfg.Engine.RosterPath)
	if err != nil {
		return fmt.Errorf("roster: %w", err)
	}
	runways, crew, err := roster.Build()
	if err != nil {
		return fmt.Errorf("roster: %w", err)
	}
	if s.snap != nil {
		snap, err := s.snap.Load()
		if err != nil {
			return fmt.Errorf("snapshot: %w", err)
		}
		if !snap.Empty() {
			if snap.Has(snapshot.RunwaysFile) {
				runways = snap.Runways
			}
			if snap.Has(snapshot.CrewFile) {
				crew = snap.Crew
			}
			if err := s.sess.Restore(snap.Flights, runways, crew); err != nil {
				return fmt.Errorf("restore snapshot: %w", err)
			}
			s.sess.Notes().Infof("Data loaded from files")
			for _, t := range snap.Truncated {
				s.sess.Notes().Warnf("%s held %d records, only the first %d were loaded", t.File, t.Count, t.Kept)
			}
			return nil
		}
	}
	if err := s.sess.Restore(nil, runways, crew); err != nil {
		return fmt.Errorf("restore roster: %w", err)
	}
	s.sess.Notes().Infof("System initialized with %d runways and %d crew members", len(runways), len(crew))
	return nil
}

// Handler returns the HTTP API with /metrics mounted.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", schedule.NewRouter(s, schedule.Options{
		Token:   s.cfg.API.Token,
		Journal: s.journal,
		Logger:  infralogger.New("api"),
	}))
	return mux
}

// Start launches the background relays: MQTT publishing, the notification
// collector and the standalone metrics listener.
func (s *Service) Start(ctx context.Context) {
	if s.pub != nil {
		go s.pub.Run(ctx, s.bus)
	}
	metrics.StartNotificationCollector(ctx, s.bus, s.sink)
	if addr := s.cfg.Metrics.PrometheusAddr; addr != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, addr, infralogger.New("metrics")); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
}

// Run starts the service and serves the API until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	defer s.monitor.Recover()
	s.Start(ctx)
	srv := &http.Server{
		Addr:              s.cfg.API.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       time.Duration(s.cfg.API.ReadTimeoutSeconds) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.API.WriteTimeoutSeconds) * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("listening on %s", s.cfg.API.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
		}
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Save writes the snapshot files. It is a no-op when snapshots are
// disabled.
func (s *Service) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

func (s *Service) saveLocked() error {
	if s.snap == nil {
		return nil
	}
	if err := s.snap.Save(s.sess.Flights(), s.sess.Runways(), s.sess.Crew()); err != nil {
		coremon.Capture(s.monitor, "snapshot", err)
		return fmt.Errorf("save snapshot: %w", err)
	}
	s.sess.Notes().Infof("Data saved to files")
	return nil
}

// Close saves the snapshot and releases every collaborator.
func (s *Service) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closeErr = s.saveLocked()
		s.mu.Unlock()
		s.release()
	})
	return s.closeErr
}

func (s *Service) release() {
	if err := s.journal.Close(); err != nil {
		s.log.Errorf("journal close: %v", err)
	}
	if c, ok := s.sink.(interface{ Close() }); ok {
		c.Close()
	}
	if s.pub != nil {
		s.pub.Disconnect()
	}
	s.bus.Close()
	s.monitor.Flush(2 * time.Second)
}

// Subscribe returns a channel receiving every notification appended from
// now on, and a function ending the subscription.
func (s *Service) Subscribe() (<-chan notify.Notification, func()) {
	sub := s.bus.Subscribe()
	return sub, func() { s.bus.Unsubscribe(sub) }
}

// Session exposes the underlying session. Callers must not use it
// concurrently with the Service's own methods.
func (s *Service) Session() *scheduling.Session { return s.sess }

func (s *Service) Config() scheduling.Config { return s.sess.Config() }

func (s *Service) Flights() []model.Flight {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.Flights()
}

func (s *Service) Runways() []model.Runway {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.Runways()
}

func (s *Service) Crew() []model.Crew {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.Crew()
}

func (s *Service) Notifications() []notify.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.Notifications()
}

func (s *Service) FindFlight(id string) (model.Flight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.FindFlight(id)
}

func (s *Service) SearchFlights(substr string) []model.Flight {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.SearchFlights(substr)
}

func (s *Service) AddFlight(ctx context.Context, spec registry.FlightSpec) (model.Flight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.AddFlight(ctx, spec)
}

func (s *Service) DelayFlight(ctx context.Context, id string, minutes int) (model.Flight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.DelayFlight(ctx, id, minutes)
}

func (s *Service) DeleteFlight(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.DeleteFlight(ctx, id)
}

func (s *Service) AssignRunways(ctx context.Context) scheduling.PassResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.AssignRunways(ctx)
}

func (s *Service) ScheduleCrew(ctx context.Context) scheduling.PassResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.ScheduleCrew(ctx)
}

func (s *Service) Allocate(ctx context.Context) (scheduling.PassResult, scheduling.PassResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.Allocate(ctx)
}

func (s *Service) ClearRunwayAssignments(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess.ClearRunwayAssignments(ctx)
}

func (s *Service) ClearCrewAssignments(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess.ClearCrewAssignments(ctx)
}

func (s *Service) WeatherDelay(ctx context.Context, minutes int) (model.Flight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.WeatherDelay(ctx, minutes)
}

func (s *Service) EmergencyInsert(ctx context.Context) (model.Flight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.EmergencyInsert(ctx)
}

func (s *Service) CancelFlight(ctx context.Context) (model.Flight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.CancelFlight(ctx)
}

func (s *Service) CancelFlightID(ctx context.Context, id string) (model.Flight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.CancelFlightID(ctx, id)
}

func (s *Service) Reschedule(ctx context.Context) (scheduling.PassResult, scheduling.PassResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.Reschedule(ctx)
}

var _ schedule.Engine = (*Service)(nil)
