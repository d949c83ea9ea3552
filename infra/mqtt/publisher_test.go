package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/kilianp07/flightops/core/notify"
	"github.com/kilianp07/flightops/core/timeofday"
	"github.com/kilianp07/flightops/internal/eventbus"
)

type published struct {
	topic   string
	qos     byte
	retain  bool
	payload []byte
}

// mockClient implements pahoClient for tests
type mockClient struct {
	mu          sync.Mutex
	opts        *paho.ClientOptions
	published   []published
	publishErrs []error
}

func (m *mockClient) IsConnected() bool { return true }
func (m *mockClient) Connect() paho.Token {
	if m.opts != nil && m.opts.OnConnect != nil {
		m.opts.OnConnect(nil)
	}
	return &dummyToken{}
}
func (m *mockClient) Disconnect(uint) {}
func (m *mockClient) Publish(topic string, qos byte, retain bool, payload interface{}) paho.Token {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, _ := payload.([]byte)
	m.published = append(m.published, published{topic, qos, retain, b})
	if len(m.publishErrs) > 0 {
		err := m.publishErrs[0]
		m.publishErrs = m.publishErrs[1:]
		return &dummyToken{err: err}
	}
	return &dummyToken{}
}

func (m *mockClient) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.published)
}

type dummyToken struct{ err error }

func (d dummyToken) Wait() bool                     { return true }
func (d dummyToken) WaitTimeout(time.Duration) bool { return true }
func (d dummyToken) Done() <-chan struct{}          { ch := make(chan struct{}); close(ch); return ch }
func (d dummyToken) Error() error                   { return d.err }

type recordMonitor struct {
	err  error
	tags map[string]string
}

func (r *recordMonitor) CaptureException(err error, tags map[string]string) {
	r.err = err
	r.tags = tags
}
func (r *recordMonitor) Recover()            {}
func (r *recordMonitor) Flush(time.Duration) {}

func withMock(t *testing.T, mc *mockClient) {
	t.Helper()
	newMQTTClient = func(o *paho.ClientOptions) pahoClient { mc.opts = o; return mc }
	t.Cleanup(func() { newMQTTClient = func(opts *paho.ClientOptions) pahoClient { return paho.NewClient(opts) } })
}

func sample() notify.Notification {
	return notify.Notification{Message: "Flight AA1 has been cancelled", Timestamp: timeofday.New(14, 5), Error: true}
}

func TestPublishPayloadAndQoS(t *testing.T) {
	mc := &mockClient{}
	withMock(t, mc)
	pub, err := NewPublisher(Config{Broker: "tcp://localhost:1883", Topic: "ops/feed", QoS: 1, Retain: true}, nil)
	if err != nil {
		t.Fatalf("publisher: %v", err)
	}
	if err := pub.Publish(sample()); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(mc.published) != 1 {
		t.Fatalf("expected one publish, got %d", len(mc.published))
	}
	got := mc.published[0]
	if got.topic != "ops/feed" || got.qos != 1 || !got.retain {
		t.Fatalf("unexpected publish settings: %+v", got)
	}
	var msg Message
	if err := json.Unmarshal(got.payload, &msg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg.Message != "Flight AA1 has been cancelled" || msg.Timestamp != "14:05" || msg.Severity != "error" || msg.ID == "" {
		t.Fatalf("unexpected payload: %+v", msg)
	}
}

func TestLWTConfigured(t *testing.T) {
	mc := &mockClient{}
	withMock(t, mc)
	cfg := Config{Broker: "tcp://localhost:1883", ClientID: "id", LWTTopic: "lwt", LWTPayload: "bye", LWTQoS: 1}
	pub, err := NewPublisher(cfg, nil)
	if err != nil {
		t.Fatalf("publisher: %v", err)
	}
	if !mc.opts.WillEnabled {
		t.Fatalf("will not enabled")
	}
	if mc.opts.WillTopic != "lwt" || string(mc.opts.WillPayload) != "bye" {
		t.Fatalf("will options incorrect")
	}
	pub.Disconnect()
	if len(mc.published) != 0 {
		t.Fatalf("unexpected publish on disconnect")
	}
}

func TestRetryLogic(t *testing.T) {
	mc := &mockClient{publishErrs: []error{fmt.Errorf("net fail"), nil}}
	withMock(t, mc)
	pub, err := NewPublisher(Config{Broker: "tcp://localhost:1883", MaxRetries: 1, BackoffMS: 1}, nil)
	if err != nil {
		t.Fatalf("publisher: %v", err)
	}
	if err := pub.Publish(sample()); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(mc.published) != 2 {
		t.Fatalf("expected retries")
	}
}

func TestPublishErrorCaptured(t *testing.T) {
	fail := fmt.Errorf("net fail")
	mc := &mockClient{publishErrs: []error{fail, fail}}
	withMock(t, mc)
	mon := &recordMonitor{}
	pub, err := NewPublisher(Config{Broker: "tcp://localhost:1883", MaxRetries: 1, BackoffMS: 1}, mon)
	if err != nil {
		t.Fatalf("publisher: %v", err)
	}
	if err := pub.Publish(sample()); err == nil {
		t.Fatalf("expected error")
	}
	if mon.err == nil {
		t.Fatalf("error not captured")
	}
	if mon.tags["component"] != "mqtt-publisher" {
		t.Fatalf("unexpected tags: %v", mon.tags)
	}
}

func TestRunRelaysBus(t *testing.T) {
	mc := &mockClient{}
	withMock(t, mc)
	pub, err := NewPublisher(Config{Broker: "tcp://localhost:1883"}, nil)
	if err != nil {
		t.Fatalf("publisher: %v", err)
	}
	bus := eventbus.New[notify.Notification](4)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		pub.Run(ctx, bus)
		close(done)
	}()
	for bus.Subscribers() == 0 {
		time.Sleep(time.Millisecond)
	}
	bus.Publish(sample())
	bus.Publish(sample())

	deadline := time.Now().Add(2 * time.Second)
	for mc.count() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if mc.count() != 2 {
		t.Fatalf("expected 2 publishes, got %d", mc.count())
	}
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("run did not stop")
	}
}

func TestConfigValidate(t *testing.T) {
	if err := (Config{}).Validate(); err != nil {
		t.Fatalf("disabled config should be valid: %v", err)
	}
	if err := (Config{Enabled: true}).Validate(); err == nil {
		t.Fatalf("expected broker error")
	}
	if err := (Config{Enabled: true, Broker: "tcp://x:1883", QoS: 3}).Validate(); err == nil {
		t.Fatalf("expected qos error")
	}
	var c Config
	c.SetDefaults()
	if c.Topic != "flightops/notifications" || c.ClientID == "" || c.MaxRetries != 3 {
		t.Fatalf("unexpected defaults: %+v", c)
	}
}
