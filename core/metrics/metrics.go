package metrics

import "time"

// PassRecord describes the outcome of one flight within an allocation pass.
type PassRecord struct {
	PassID         string
	Kind           string // "runway" or "crew"
	FlightID       string
	ResourceID     int
	Score          int
	Assigned       bool
	PenaltyMinutes int
	Time           time.Time
}

// MetricsSink records allocation pass outcomes.
type MetricsSink interface {
	RecordPass(records []PassRecord) error
}

// DisruptionEvent records a simulated disruption.
type DisruptionEvent struct {
	Kind     string // "weather", "emergency", "cancellation", "reschedule"
	FlightID string
	Minutes  int
	Time     time.Time
}

// DisruptionRecorder is implemented by sinks able to record disruptions.
type DisruptionRecorder interface {
	RecordDisruption(ev DisruptionEvent) error
}

// RegistrySizes is a point-in-time view of registry occupancy.
type RegistrySizes struct {
	Flights   int
	Runways   int
	Crew      int
	ByStatus  map[string]int
	OnDuty    int
	InUse     int
	Timestamp time.Time
}

// RegistrySizeRecorder is implemented by sinks able to record occupancy.
type RegistrySizeRecorder interface {
	RecordRegistrySizes(s RegistrySizes) error
}

// NotificationEvent mirrors one entry of the notification feed.
type NotificationEvent struct {
	Message  string
	Severity string
	Time     time.Time
}

// NotificationRecorder is implemented by sinks able to count notifications.
type NotificationRecorder interface {
	RecordNotification(ev NotificationEvent) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordPass([]PassRecord) error              { return nil }
func (NopSink) RecordDisruption(DisruptionEvent) error     { return nil }
func (NopSink) RecordRegistrySizes(RegistrySizes) error    { return nil }
func (NopSink) RecordNotification(NotificationEvent) error { return nil }
