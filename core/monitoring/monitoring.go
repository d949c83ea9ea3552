// Package monitoring forwards unexpected infrastructure failures (sink,
// journal, snapshot or publisher errors) to an error tracker. The default
// monitor discards everything.
package monitoring

import "time"

// Monitor defines methods used for error reporting.
type Monitor interface {
	CaptureException(err error, tags map[string]string)
	Recover()
	Flush(timeout time.Duration)
}

// NopMonitor discards reports.
type NopMonitor struct{}

func (NopMonitor) CaptureException(error, map[string]string) {}
func (NopMonitor) Recover()                                  {}
func (NopMonitor) Flush(time.Duration)                       {}

// Capture reports err on m tagged with the component name. It is a no-op
// for a nil monitor or a nil error.
func Capture(m Monitor, component string, err error) {
	if m == nil || err == nil {
		return
	}
	m.CaptureException(err, map[string]string{"component": component})
}
