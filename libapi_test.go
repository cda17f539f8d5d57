package frameflow

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"

	_ "github.com/drblury/frameflow/transport/raw"
	_ "github.com/drblury/frameflow/wire/channel"
)

func TestConfigExports(t *testing.T) {
	cfg := &Config{WireSystem: "channel"}
	if err := ValidateConfig(cfg); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}

	if err := ValidateConfig(&Config{WireSystem: "kafka"}); err == nil {
		t.Fatal("expected kafka config without brokers to fail validation")
	}
}

func TestBuildBusAndPublishThroughExports(t *testing.T) {
	cfg := &Config{WireSystem: "channel", Namespace: "/cam0"}
	bus, err := BuildBus(context.Background(), cfg, watermill.NopLogger{})
	if err != nil {
		t.Fatalf("unexpected error building bus: %v", err)
	}

	pairs := make(chan struct{}, 1)
	sub, err := NewCameraSubscriber(bus, "image_raw", func(f *Frame, c *Calibration) {
		pairs <- struct{}{}
	}, "raw", QoS{})
	if err != nil {
		t.Fatalf("unexpected error creating subscriber: %v", err)
	}
	defer sub.Shutdown()

	pub, err := NewCameraPublisher(bus, "image_raw", "raw", QoS{})
	if err != nil {
		t.Fatalf("unexpected error creating publisher: %v", err)
	}
	defer pub.Shutdown()

	f := NewFrame(4, 4, "mono8")
	if err := pub.PublishStamped(f, &Calibration{Width: 4, Height: 4}, time.Now()); err != nil {
		t.Fatalf("unexpected publish error: %v", err)
	}

	select {
	case <-pairs:
	case <-time.After(time.Second):
		t.Fatal("pair was not delivered")
	}
}

type recordingServiceLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *recordingServiceLogger) record(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, msg)
}

func (l *recordingServiceLogger) With(fields LogFields) ServiceLogger { return l }
func (l *recordingServiceLogger) Debug(msg string, fields LogFields)  { l.record(msg) }
func (l *recordingServiceLogger) Info(msg string, fields LogFields)   { l.record(msg) }
func (l *recordingServiceLogger) Trace(msg string, fields LogFields)  { l.record(msg) }
func (l *recordingServiceLogger) Error(msg string, err error, fields LogFields) {
	l.record(msg)
}

func (l *recordingServiceLogger) has(msg string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range l.messages {
		if m == msg {
			return true
		}
	}
	return false
}

func TestBuildBusWithLogger(t *testing.T) {
	logger := &recordingServiceLogger{}
	cfg := &Config{WireSystem: "channel", Namespace: "/cam0"}

	bus, err := BuildBusWithLogger(context.Background(), cfg, logger)
	if err != nil {
		t.Fatalf("unexpected error building bus: %v", err)
	}

	pub, err := NewPublisher(bus, "image_raw", "raw", QoS{})
	if err != nil {
		t.Fatalf("unexpected error creating publisher: %v", err)
	}

	// An invalid-state publish logs through the bus logger, which must reach
	// the wrapped ServiceLogger.
	pub.Shutdown()
	if err := pub.Publish(NewFrame(1, 1, "mono8")); err == nil {
		t.Fatal("expected publish after shutdown to fail")
	}
	if !logger.has("Call on an invalid camera publisher") {
		t.Fatal("expected the invalid-publisher diagnostic to reach the ServiceLogger")
	}
}

func TestSentinelErrorExports(t *testing.T) {
	pub := NewSimplePublisher("fake", nil)
	if err := pub.Publish(NewFrame(1, 1, "mono8")); !errors.Is(err, ErrNotAdvertised) {
		t.Fatalf("expected ErrNotAdvertised, got %v", err)
	}
}

func TestCalibrationTopicExport(t *testing.T) {
	if got := CalibrationTopic("/cam0/image_raw"); got != "/cam0/calibration" {
		t.Fatalf("unexpected calibration topic %q", got)
	}
}
