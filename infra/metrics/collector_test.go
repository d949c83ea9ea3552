package metrics

import (
	"context"
	"sync"
	"testing"
	"time"

	coremetrics "github.com/kilianp07/flightops/core/metrics"
	"github.com/kilianp07/flightops/core/notify"
	"github.com/kilianp07/flightops/core/timeofday"
	"github.com/kilianp07/flightops/internal/eventbus"
)

type notifSink struct {
	coremetrics.NopSink
	mu  sync.Mutex
	evs []coremetrics.NotificationEvent
}

func (s *notifSink) RecordNotification(ev coremetrics.NotificationEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evs = append(s.evs, ev)
	return nil
}

func (s *notifSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.evs)
}

func TestStartNotificationCollector(t *testing.T) {
	bus := eventbus.New[notify.Notification](8)
	sink := &notifSink{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	StartNotificationCollector(ctx, bus, sink)

	log := notify.NewLog(10, timeofday.FixedClock(timeofday.New(8, 0)))
	log.Attach(bus)
	log.Warnf("Weather delay: Flight %s delayed by %d minutes", "AA1", 30)
	log.Errorf("Flight %s has been cancelled", "AA2")

	deadline := time.Now().Add(2 * time.Second)
	for sink.count() < 2 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if sink.count() != 2 {
		t.Fatalf("expected 2 events, got %d", sink.count())
	}
	sink.mu.Lock()
	defer sink.mu.Unlock()
	if sink.evs[0].Severity != "warning" || sink.evs[1].Severity != "error" {
		t.Fatalf("unexpected severities: %+v", sink.evs)
	}
}
