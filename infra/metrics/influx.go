package metrics

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/flightops/core/metrics"
	"github.com/kilianp07/flightops/infra/logger"
)

// InfluxSink writes allocation and disruption events to an InfluxDB
// instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// InfluxConfig holds the connection settings of an InfluxSink.
type InfluxConfig struct {
	URL    string `json:"url"`
	Token  string `json:"token"`
	Org    string `json:"org"`
	Bucket string `json:"bucket"`
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(cfg InfluxConfig) *InfluxSink {
	base := strings.TrimSuffix(cfg.URL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.Token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a
// NopSink if the health check fails.
func NewInfluxSinkWithFallback(cfg InfluxConfig) coremetrics.MetricsSink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordPass writes one allocation_outcome point per flight.
func (s *InfluxSink) RecordPass(recs []coremetrics.PassRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, r := range recs {
		p := write.NewPointWithMeasurement("allocation_outcome").
			AddTag("pass_id", r.PassID).
			AddTag("kind", r.Kind).
			AddTag("flight_id", r.FlightID).
			AddTag("assigned", strconv.FormatBool(r.Assigned)).
			AddField("resource_id", r.ResourceID).
			AddField("score", r.Score).
			AddField("penalty_minutes", r.PenaltyMinutes).
			SetTime(r.Time)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// RecordDisruption writes a disruption point.
func (s *InfluxSink) RecordDisruption(ev coremetrics.DisruptionEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("disruption").
		AddTag("kind", ev.Kind)
	if ev.FlightID != "" {
		p = p.AddTag("flight_id", ev.FlightID)
	}
	p = p.AddField("minutes", ev.Minutes).SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordRegistrySizes writes registry occupancy.
func (s *InfluxSink) RecordRegistrySizes(sz coremetrics.RegistrySizes) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("registry_sizes").
		AddField("flights", sz.Flights).
		AddField("runways", sz.Runways).
		AddField("crew", sz.Crew).
		AddField("runways_in_use", sz.InUse).
		AddField("crew_on_duty", sz.OnDuty)
	for st, n := range sz.ByStatus {
		p = p.AddField("status_"+strings.ToLower(st), n)
	}
	p = p.SetTime(sz.Timestamp)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the HTTP client.
func (s *InfluxSink) Close() {
	s.client.Close()
}
