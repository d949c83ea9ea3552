package metrics

// MultiSink fans records out to several sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordPass forwards to all sinks, returning the first error encountered.
func (m *MultiSink) RecordPass(recs []PassRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordPass(recs); err != nil {
			return err
		}
	}
	return nil
}

// RecordDisruption forwards to sinks implementing DisruptionRecorder.
func (m *MultiSink) RecordDisruption(ev DisruptionEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(DisruptionRecorder); ok {
			if err := rec.RecordDisruption(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordRegistrySizes forwards to sinks implementing RegistrySizeRecorder.
func (m *MultiSink) RecordRegistrySizes(sz RegistrySizes) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(RegistrySizeRecorder); ok {
			if err := rec.RecordRegistrySizes(sz); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordNotification forwards to sinks implementing NotificationRecorder.
func (m *MultiSink) RecordNotification(ev NotificationEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(NotificationRecorder); ok {
			if err := rec.RecordNotification(ev); err != nil {
				return err
			}
		}
	}
	return nil
}
