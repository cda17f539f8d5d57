package camera

import (
	"context"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/drblury/frameflow/frame"
	"github.com/drblury/frameflow/internal/jsoncodec"
	"github.com/drblury/frameflow/internal/timesync"
	"github.com/drblury/frameflow/wire"
)

// PairCallback receives a frame together with the calibration record that
// carries the same time stamp.
type PairCallback func(*frame.Frame, *frame.Calibration)

// desyncFactor is the tolerated imbalance between one-sided receipts and
// matched pairs. With fewer pairs than a third of either side's traffic the
// watchdog considers the streams desynchronized.
const desyncFactor = 3

// defaultCheckInterval is the watchdog cadence.
const defaultCheckInterval = time.Second

// CameraSubscriber subscribes to an image topic and its calibration sibling
// and delivers time-matched pairs to a single callback. A watchdog checks
// once per interval whether frames and calibration records actually pair up
// and logs a warning when one stream runs far ahead of the matches.
type CameraSubscriber struct {
	bus       *wire.Bus
	image     *Subscriber
	infoTopic string
	syncer    *timesync.Synchronizer[*frame.Frame, *frame.Calibration]
	cb        PairCallback
	metrics   *Metrics

	infoCancel context.CancelFunc
	done       chan struct{}

	mu             sync.Mutex
	closed         bool
	framesSeen     int
	infosSeen      int
	pairsDelivered int
}

// CameraSubscriberOption customizes a CameraSubscriber.
type CameraSubscriberOption func(*cameraSubscriberConfig)

type cameraSubscriberConfig struct {
	metrics       *Metrics
	checkInterval time.Duration
}

// WithMetrics attaches Prometheus counters to the subscriber.
func WithMetrics(m *Metrics) CameraSubscriberOption {
	return func(c *cameraSubscriberConfig) { c.metrics = m }
}

// WithCheckInterval overrides the watchdog cadence. Values <= 0 keep the
// default of one second.
func WithCheckInterval(d time.Duration) CameraSubscriberOption {
	return func(c *cameraSubscriberConfig) {
		if d > 0 {
			c.checkInterval = d
		}
	}
}

// NewCameraSubscriber subscribes to the image topic through the named
// transport and to the derived calibration topic directly on the wire. Any
// setup failure tears down what was already subscribed and returns the
// error; there is no half-active state.
func NewCameraSubscriber(bus *wire.Bus, baseTopic string, cb PairCallback, transportName string, qos wire.QoS, opts ...CameraSubscriberOption) (*CameraSubscriber, error) {
	cfg := cameraSubscriberConfig{checkInterval: defaultCheckInterval}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &CameraSubscriber{
		bus:     bus,
		cb:      cb,
		metrics: cfg.metrics,
		done:    make(chan struct{}),
	}
	s.syncer = timesync.New[*frame.Frame, *frame.Calibration](qos.DepthOrDefault(), s.deliverPair)

	image, err := NewSubscriber(bus, baseTopic, s.frameArrived, transportName, qos)
	if err != nil {
		return nil, err
	}
	s.image = image
	// Derived from the image base topic so it matches CameraPublisher
	// regardless of the transport's wire topic suffix.
	s.infoTopic = CalibrationTopic(bus.ResolveTopic(baseTopic))

	ctx, cancel := context.WithCancel(context.Background())
	msgs, err := bus.Subscriber.Subscribe(ctx, s.infoTopic)
	if err != nil {
		cancel()
		image.Shutdown()
		return nil, err
	}
	s.infoCancel = cancel

	go s.runInfo(msgs)
	go s.runWatchdog(cfg.checkInterval)
	return s, nil
}

// Topic returns the resolved image topic.
func (s *CameraSubscriber) Topic() string { return s.image.Topic() }

// InfoTopic returns the resolved calibration topic.
func (s *CameraSubscriber) InfoTopic() string { return s.infoTopic }

// Transport returns the name of the active frame transport.
func (s *CameraSubscriber) Transport() string { return s.image.Transport() }

// NumPublishers returns the larger of the publisher counts on the image and
// calibration topics.
func (s *CameraSubscriber) NumPublishers() int {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return 0
	}
	return max(s.image.NumPublishers(), s.bus.PublisherCount(s.infoTopic))
}

// IsValid reports whether Shutdown has not been called yet.
func (s *CameraSubscriber) IsValid() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed
}

// Shutdown cancels both subscriptions and stops the watchdog. Repeated
// calls are no-ops; the pair callback never fires after the first Shutdown
// returns.
func (s *CameraSubscriber) Shutdown() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	close(s.done)
	s.infoCancel()
	s.image.Shutdown()
}

func (s *CameraSubscriber) frameArrived(f *frame.Frame) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.framesSeen++
	s.mu.Unlock()

	s.metrics.observeFrame(s.image.Topic())
	s.syncer.AddLeft(f.TimeKey(), f)
}

func (s *CameraSubscriber) calibrationArrived(c *frame.Calibration) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.infosSeen++
	s.mu.Unlock()

	s.metrics.observeCalibration(s.infoTopic)
	s.syncer.AddRight(c.TimeKey(), c)
}

func (s *CameraSubscriber) deliverPair(f *frame.Frame, c *frame.Calibration) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.pairsDelivered++
	s.mu.Unlock()

	s.metrics.observePair(s.image.Topic())
	s.cb(f, c)
}

func (s *CameraSubscriber) runInfo(msgs <-chan *message.Message) {
	for msg := range msgs {
		var c frame.Calibration
		if err := jsoncodec.Unmarshal(msg.Payload, &c); err != nil {
			s.bus.LoggerOrNop().Error("Dropping undecodable calibration record", err, watermill.LogFields{
				"topic":      s.infoTopic,
				"message_id": msg.UUID,
			})
			msg.Ack()
			continue
		}
		msg.Ack()
		s.calibrationArrived(&c)
	}
}

func (s *CameraSubscriber) runWatchdog(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.checkSynchronized()
		}
	}
}

// checkSynchronized compares the per-window receive counters against the
// matched pairs and warns when either one-sided stream exceeds three times
// the pair count. All three counters restart from zero each window, so a
// stream that recovers stops warning within one interval.
func (s *CameraSubscriber) checkSynchronized() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	frames, infos, pairs := s.framesSeen, s.infosSeen, s.pairsDelivered
	s.framesSeen, s.infosSeen, s.pairsDelivered = 0, 0, 0
	s.mu.Unlock()

	threshold := desyncFactor * pairs
	if frames <= threshold && infos <= threshold {
		return
	}

	s.metrics.observeDesync(s.image.Topic())
	s.bus.LoggerOrNop().Info("Image and calibration topics do not appear to be synchronized", watermill.LogFields{
		"image_topic":           s.image.Topic(),
		"calibration_topic":     s.infoTopic,
		"frames_received":       frames,
		"calibrations_received": infos,
		"pairs_matched":         pairs,
	})
}
