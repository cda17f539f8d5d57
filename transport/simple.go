package transport

import (
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/drblury/frameflow/frame"
	"github.com/drblury/frameflow/wire"
)

// EncodeFunc turns a canonical frame into the transport's wire message.
type EncodeFunc func(*frame.Frame) (*message.Message, error)

// SimplePublisher implements Publisher for the common case of one wire
// message type on one topic. A concrete transport supplies only its encode
// function; channel management, topic naming, subscriber counting, and
// shutdown come for free.
//
// The copy encode is the mandatory entry point. An owned encode is optional:
// when absent, PublishOwned falls back to the copy path, so the simplest
// plugin is still usable through the whole Publisher interface.
type SimplePublisher struct {
	name        string
	encode      EncodeFunc
	encodeOwned EncodeFunc
	topicFn     func(resolvedBase string) string

	mu         sync.Mutex
	bus        *wire.Bus
	topic      string
	advertised bool
	closed     bool
}

// SimplePublisherOption configures a SimplePublisher.
type SimplePublisherOption func(*SimplePublisher)

// WithOwnedEncode installs a zero-copy encode used by PublishOwned. The
// function receives a frame whose buffer it may keep without cloning.
func WithOwnedEncode(fn EncodeFunc) SimplePublisherOption {
	return func(p *SimplePublisher) { p.encodeOwned = fn }
}

// WithAdvertisedTopic overrides the default wire topic naming of
// resolvedBase + "/" + transport name.
func WithAdvertisedTopic(fn func(resolvedBase string) string) SimplePublisherOption {
	return func(p *SimplePublisher) { p.topicFn = fn }
}

// NewSimplePublisher creates a publisher plugin for the named transport.
// encode may be nil only for transports that implement the owned form
// exclusively; Publish then reports ErrCopyPublishUnsupported.
func NewSimplePublisher(name string, encode EncodeFunc, opts ...SimplePublisherOption) *SimplePublisher {
	if name == "" {
		panic("frameflow: transport name cannot be empty")
	}
	p := &SimplePublisher{
		name:   name,
		encode: encode,
	}
	p.topicFn = func(resolvedBase string) string {
		return resolvedBase + "/" + name
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// TransportName implements Publisher.
func (p *SimplePublisher) TransportName() string { return p.name }

// SupportsOwnedPublish implements Publisher.
func (p *SimplePublisher) SupportsOwnedPublish() bool { return p.encodeOwned != nil }

// Advertise implements Publisher.
func (p *SimplePublisher) Advertise(bus *wire.Bus, baseTopic string, qos wire.QoS) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrShutdown
	}
	if bus == nil || bus.Publisher == nil {
		return ErrNotAdvertised
	}

	p.bus = bus
	p.topic = p.topicFn(bus.ResolveTopic(baseTopic))
	p.advertised = true

	bus.LoggerOrNop().Debug("Advertised frame transport", watermill.LogFields{
		"transport": p.name,
		"topic":     p.topic,
	})
	return nil
}

// Publish implements Publisher with copy semantics.
func (p *SimplePublisher) Publish(f *frame.Frame) error {
	return p.publishWith(p.encode, ErrCopyPublishUnsupported, f)
}

// PublishOwned implements Publisher. Without an owned encode it wraps the
// copy encode, so the frame is copied instead of moved but never dropped.
func (p *SimplePublisher) PublishOwned(f *frame.Frame) error {
	if p.encodeOwned != nil {
		return p.publishWith(p.encodeOwned, ErrOwnedPublishUnsupported, f)
	}
	if p.encode != nil {
		return p.publishWith(p.encode, ErrOwnedPublishUnsupported, f)
	}
	return ErrOwnedPublishUnsupported
}

func (p *SimplePublisher) publishWith(encode EncodeFunc, unimplemented error, f *frame.Frame) error {
	p.mu.Lock()
	bus, topic := p.bus, p.topic
	ok := p.advertised && !p.closed
	p.mu.Unlock()

	if !ok {
		logger := watermill.LoggerAdapter(watermill.NopLogger{})
		if bus != nil {
			logger = bus.LoggerOrNop()
		}
		logger.Error("Call to publish on an invalid frame transport", ErrNotAdvertised, watermill.LogFields{
			"transport": p.name,
		})
		return ErrNotAdvertised
	}
	if encode == nil {
		// Plugin contract violation, surfaced hard rather than swallowed.
		return unimplemented
	}

	msg, err := encode(f)
	if err != nil {
		bus.LoggerOrNop().Error("Dropping frame that failed to encode", err, watermill.LogFields{
			"transport": p.name,
			"topic":     topic,
		})
		return err
	}

	if err := bus.Publisher.Publish(topic, msg); err != nil {
		bus.LoggerOrNop().Error("Failed to publish frame", err, watermill.LogFields{
			"transport": p.name,
			"topic":     topic,
		})
		return err
	}
	return nil
}

// NumSubscribers implements Publisher.
func (p *SimplePublisher) NumSubscribers() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.advertised || p.closed {
		return 0
	}
	return p.bus.SubscriberCount(p.topic)
}

// Topic implements Publisher.
func (p *SimplePublisher) Topic() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.topic
}

// Shutdown implements Publisher. Repeated calls are no-ops.
func (p *SimplePublisher) Shutdown() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	p.advertised = false
}
