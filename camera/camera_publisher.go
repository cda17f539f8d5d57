package camera

import (
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/drblury/frameflow/frame"
	"github.com/drblury/frameflow/internal/jsoncodec"
	"github.com/drblury/frameflow/wire"
)

// CameraPublisher pairs an image publisher with a calibration stream on the
// sibling topic derived via CalibrationTopic. Frames travel through the
// chosen transport plugin; calibration records go straight onto the wire as
// JSON, since they are small and transport-independent.
type CameraPublisher struct {
	mu        sync.Mutex
	bus       *wire.Bus
	image     *Publisher
	infoTopic string
	closed    bool
}

// NewCameraPublisher advertises the image topic through the named transport
// and prepares the calibration sibling topic.
func NewCameraPublisher(bus *wire.Bus, baseTopic, transportName string, qos wire.QoS) (*CameraPublisher, error) {
	image, err := NewPublisher(bus, baseTopic, transportName, qos)
	if err != nil {
		return nil, err
	}
	// The calibration topic derives from the image base topic, not from the
	// transport's wire topic, so all transports share one calibration stream.
	return &CameraPublisher{
		bus:       bus,
		image:     image,
		infoTopic: CalibrationTopic(bus.ResolveTopic(baseTopic)),
	}, nil
}

// Publish sends the frame through the transport and the calibration record
// on the sibling topic. Both carry whatever stamps they already hold; use
// PublishStamped to stamp them together.
func (p *CameraPublisher) Publish(f *frame.Frame, c *frame.Calibration) error {
	if !p.markActive("Publish") {
		return nil
	}
	if err := p.image.Publish(f); err != nil {
		return err
	}
	return p.publishCalibration(c)
}

// PublishStamped stamps both messages with the given time before sending, so
// a synchronized subscriber pairs them under the same time key. The caller's
// frame and calibration are left untouched; the stamp lands on shallow copies
// that share the pixel buffer and distortion coefficients.
func (p *CameraPublisher) PublishStamped(f *frame.Frame, c *frame.Calibration, stamp time.Time) error {
	sf := *f
	sc := *c
	sf.Header.Stamp = stamp
	sc.Header.Stamp = stamp
	if sc.Header.FrameID == "" {
		sc.Header.FrameID = sf.Header.FrameID
	}
	return p.Publish(&sf, &sc)
}

// Topic returns the resolved image topic.
func (p *CameraPublisher) Topic() string { return p.image.Topic() }

// InfoTopic returns the resolved calibration topic.
func (p *CameraPublisher) InfoTopic() string { return p.infoTopic }

// Transport returns the name of the active frame transport.
func (p *CameraPublisher) Transport() string { return p.image.Transport() }

// NumSubscribers returns the larger of the subscriber counts on the image
// and calibration topics, so a producer can skip expensive frame prep only
// when nobody listens on either side.
func (p *CameraPublisher) NumSubscribers() int {
	return max(p.image.NumSubscribers(), p.bus.SubscriberCount(p.infoTopic))
}

// Shutdown closes both streams. Repeated calls are no-ops.
func (p *CameraPublisher) Shutdown() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	p.image.Shutdown()
}

// IsValid reports whether Shutdown has not been called yet.
func (p *CameraPublisher) IsValid() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.closed
}

func (p *CameraPublisher) publishCalibration(c *frame.Calibration) error {
	payload, err := jsoncodec.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode calibration record: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := p.bus.Publisher.Publish(p.infoTopic, msg); err != nil {
		return fmt.Errorf("failed to publish calibration record: %w", err)
	}
	return nil
}

func (p *CameraPublisher) markActive(op string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		p.bus.LoggerOrNop().Error("Call on an invalid camera publisher", nil, watermill.LogFields{
			"op":    op,
			"topic": p.image.Topic(),
		})
		return false
	}
	return true
}
