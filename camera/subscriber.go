package camera

import (
	"sync"

	"github.com/drblury/frameflow/transport"
	"github.com/drblury/frameflow/wire"
)

// Subscriber owns one frame transport subscription and delivers decoded
// frames to a single callback.
type Subscriber struct {
	mu     sync.Mutex
	plugin transport.Subscriber
	closed bool
}

// NewSubscriber resolves the named transport from the default registry and
// subscribes on the bus. A resolution or subscribe failure aborts the whole
// setup.
func NewSubscriber(bus *wire.Bus, baseTopic string, cb transport.Callback, transportName string, qos wire.QoS) (*Subscriber, error) {
	plugin, err := transport.NewSubscriber(transportName)
	if err != nil {
		return nil, err
	}
	if err := plugin.Subscribe(bus, baseTopic, cb, qos); err != nil {
		plugin.Shutdown()
		return nil, err
	}
	return &Subscriber{plugin: plugin}, nil
}

// NumPublishers returns the number of publishers currently connected.
func (s *Subscriber) NumPublishers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0
	}
	return s.plugin.NumPublishers()
}

// Topic returns the resolved wire topic of the subscription.
func (s *Subscriber) Topic() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plugin.Topic()
}

// Transport returns the active transport name.
func (s *Subscriber) Transport() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plugin.TransportName()
}

// Shutdown cancels the subscription. Repeated calls are no-ops; no callback
// fires after the first Shutdown returns.
func (s *Subscriber) Shutdown() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()
	s.plugin.Shutdown()
}

// IsValid reports whether Shutdown has not been called yet.
func (s *Subscriber) IsValid() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed
}
