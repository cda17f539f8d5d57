// Package camera provides the user-facing facades: a publisher that owns one
// frame transport plugin, its camera variant that adds a calibration stream,
// and the subscribe-side facades including the synchronized pair subscriber
// with its desynchronization watchdog.
package camera

import (
	"sync"

	"github.com/ThreeDotsLabs/watermill"

	"github.com/drblury/frameflow/frame"
	"github.com/drblury/frameflow/transport"
	"github.com/drblury/frameflow/wire"
)

// Publisher owns exactly one active frame transport plugin and forwards
// publish calls to it. It is valid from construction until Shutdown and
// permanently invalid afterwards.
type Publisher struct {
	mu     sync.Mutex
	bus    *wire.Bus
	plugin transport.Publisher
	closed bool
}

// NewPublisher resolves the named transport from the default registry and
// advertises it on the bus. Resolution or advertise failure aborts the whole
// setup; no half-initialized publisher is returned.
func NewPublisher(bus *wire.Bus, baseTopic, transportName string, qos wire.QoS) (*Publisher, error) {
	plugin, err := transport.NewPublisher(transportName)
	if err != nil {
		return nil, err
	}
	if err := plugin.Advertise(bus, baseTopic, qos); err != nil {
		plugin.Shutdown()
		return nil, err
	}
	return &Publisher{bus: bus, plugin: plugin}, nil
}

// Publish sends a frame with copy semantics.
func (p *Publisher) Publish(f *frame.Frame) error {
	plugin, ok := p.activePlugin("Publish")
	if !ok {
		return transport.ErrNotAdvertised
	}
	return plugin.Publish(f)
}

// PublishOwned sends a frame transferring buffer ownership. Check
// SupportsOwnedPublish before relying on zero-copy; without it the plugin
// falls back to copy semantics.
func (p *Publisher) PublishOwned(f *frame.Frame) error {
	plugin, ok := p.activePlugin("PublishOwned")
	if !ok {
		return transport.ErrNotAdvertised
	}
	return plugin.PublishOwned(f)
}

// SupportsOwnedPublish reports whether the active transport has a zero-copy
// publish path.
func (p *Publisher) SupportsOwnedPublish() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.closed && p.plugin.SupportsOwnedPublish()
}

// NumSubscribers returns the number of subscribers currently connected.
func (p *Publisher) NumSubscribers() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return 0
	}
	return p.plugin.NumSubscribers()
}

// Topic returns the resolved wire topic of the active transport.
func (p *Publisher) Topic() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.plugin.Topic()
}

// Transport returns the active transport name.
func (p *Publisher) Transport() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.plugin.TransportName()
}

// Shutdown closes the advertisement. Repeated calls are no-ops; the
// publisher is not reusable afterwards.
func (p *Publisher) Shutdown() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	p.plugin.Shutdown()
}

// IsValid reports whether Shutdown has not been called yet.
func (p *Publisher) IsValid() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.closed
}

func (p *Publisher) activePlugin(op string) (transport.Publisher, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		p.bus.LoggerOrNop().Error("Call on an invalid camera publisher", transport.ErrNotAdvertised, watermill.LogFields{
			"op": op,
		})
		return nil, false
	}
	return p.plugin, true
}
