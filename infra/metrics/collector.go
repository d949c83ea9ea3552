package metrics

import (
	"context"
	"time"

	coremetrics "github.com/kilianp07/flightops/core/metrics"
	"github.com/kilianp07/flightops/core/notify"
	"github.com/kilianp07/flightops/internal/eventbus"
)

// StartNotificationCollector subscribes to the notification bus and
// forwards every entry to sinks implementing NotificationRecorder.
// It stops when the context is canceled or the bus is closed.
func StartNotificationCollector(ctx context.Context, bus *eventbus.Bus[notify.Notification], sink coremetrics.MetricsSink) {
	if bus == nil || sink == nil {
		return
	}
	rec, ok := sink.(coremetrics.NotificationRecorder)
	if !ok {
		return
	}
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case n, ok := <-sub:
				if !ok {
					return
				}
				_ = rec.RecordNotification(coremetrics.NotificationEvent{
					Message:  n.Message,
					Severity: n.Severity(),
					Time:     time.Now(),
				})
			}
		}
	}()
}
