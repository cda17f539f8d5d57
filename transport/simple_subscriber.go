package transport

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/drblury/frameflow/frame"
	"github.com/drblury/frameflow/wire"
)

// DecodeFunc turns a transport wire message back into a canonical frame.
type DecodeFunc func(*message.Message) (*frame.Frame, error)

// SimpleSubscriber implements Subscriber for the one-topic, one-message-type
// case: a concrete transport supplies only its decode function. Messages
// that fail to decode are dropped with a diagnostic and the subscription
// keeps running.
type SimpleSubscriber struct {
	name    string
	decode  DecodeFunc
	topicFn func(resolvedBase string) string

	mu         sync.Mutex
	bus        *wire.Bus
	topic      string
	cancel     context.CancelFunc
	subscribed bool
	closed     bool
}

// SimpleSubscriberOption configures a SimpleSubscriber.
type SimpleSubscriberOption func(*SimpleSubscriber)

// WithSubscribedTopic overrides the default wire topic naming of
// resolvedBase + "/" + transport name. It must match the publish side's
// naming for the same transport.
func WithSubscribedTopic(fn func(resolvedBase string) string) SimpleSubscriberOption {
	return func(s *SimpleSubscriber) { s.topicFn = fn }
}

// NewSimpleSubscriber creates a subscriber plugin for the named transport.
func NewSimpleSubscriber(name string, decode DecodeFunc, opts ...SimpleSubscriberOption) *SimpleSubscriber {
	if name == "" {
		panic("frameflow: transport name cannot be empty")
	}
	if decode == nil {
		panic("frameflow: decode function cannot be nil")
	}
	s := &SimpleSubscriber{
		name:   name,
		decode: decode,
	}
	s.topicFn = func(resolvedBase string) string {
		return resolvedBase + "/" + name
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TransportName implements Subscriber.
func (s *SimpleSubscriber) TransportName() string { return s.name }

// Subscribe implements Subscriber. The callback runs on the delivery
// goroutine; delivery order on the topic is preserved.
func (s *SimpleSubscriber) Subscribe(bus *wire.Bus, baseTopic string, cb Callback, qos wire.QoS) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrShutdown
	}
	if bus == nil || bus.Subscriber == nil {
		return ErrNotSubscribed
	}
	if s.subscribed {
		return ErrNotSubscribed
	}

	topic := s.topicFn(bus.ResolveTopic(baseTopic))
	ctx, cancel := context.WithCancel(context.Background())

	ch, err := bus.Subscriber.Subscribe(ctx, topic)
	if err != nil {
		cancel()
		return err
	}

	s.bus = bus
	s.topic = topic
	s.cancel = cancel
	s.subscribed = true

	go s.run(ch, cb)
	return nil
}

func (s *SimpleSubscriber) run(ch <-chan *message.Message, cb Callback) {
	for msg := range ch {
		f, err := s.decode(msg)
		msg.Ack()
		if err != nil {
			s.bus.LoggerOrNop().Error("Dropping frame message that failed to decode", err, watermill.LogFields{
				"transport": s.name,
				"topic":     s.topic,
				"uuid":      msg.UUID,
			})
			continue
		}
		if s.isClosed() {
			return
		}
		cb(f)
	}
}

func (s *SimpleSubscriber) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// NumPublishers implements Subscriber.
func (s *SimpleSubscriber) NumPublishers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.subscribed || s.closed {
		return 0
	}
	return s.bus.PublisherCount(s.topic)
}

// Topic implements Subscriber.
func (s *SimpleSubscriber) Topic() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.topic
}

// Shutdown implements Subscriber. Safe to call from the delivery callback;
// repeated calls are no-ops.
func (s *SimpleSubscriber) Shutdown() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.subscribed = false
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}
