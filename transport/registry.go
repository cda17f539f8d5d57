package transport

import (
	"fmt"
	"sync"
)

// LookupNamespace prefixes every registry lookup name.
const LookupNamespace = "frameflow"

const (
	pubSuffix = "_pub"
	subSuffix = "_sub"
)

// PublisherLookupName returns the registry key for a transport's publish
// side, e.g. "frameflow/raw_pub".
func PublisherLookupName(transportName string) string {
	return LookupNamespace + "/" + transportName + pubSuffix
}

// SubscriberLookupName returns the registry key for a transport's subscribe
// side, e.g. "frameflow/raw_sub".
func SubscriberLookupName(transportName string) string {
	return LookupNamespace + "/" + transportName + subSuffix
}

// PublisherFactory creates a fresh, unadvertised publisher plugin instance.
type PublisherFactory func() Publisher

// SubscriberFactory creates a fresh, unsubscribed subscriber plugin instance.
type SubscriberFactory func() Subscriber

// Registry maps transport names to plugin factories. Transport packages
// register themselves using Register; facades resolve plugins by name at
// construction time.
type Registry struct {
	mu           sync.RWMutex
	publishers   map[string]PublisherFactory
	subscribers  map[string]SubscriberFactory
	capabilities map[string]Capabilities
}

// DefaultRegistry is the global transport registry.
var DefaultRegistry = NewRegistry()

// NewRegistry creates an empty transport registry.
func NewRegistry() *Registry {
	return &Registry{
		publishers:   make(map[string]PublisherFactory),
		subscribers:  make(map[string]SubscriberFactory),
		capabilities: make(map[string]Capabilities),
	}
}

// Register adds both sides of a transport plugin under its name.
func (r *Registry) Register(name string, pf PublisherFactory, sf SubscriberFactory, caps Capabilities) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if pf != nil {
		r.publishers[PublisherLookupName(name)] = pf
	}
	if sf != nil {
		r.subscribers[SubscriberLookupName(name)] = sf
	}
	r.capabilities[name] = caps
}

// GetCapabilities returns the capabilities for a registered transport.
// Returns a zero Capabilities struct if the transport is unknown.
func (r *Registry) GetCapabilities(name string) Capabilities {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if caps, ok := r.capabilities[name]; ok {
		return caps
	}
	return Capabilities{Name: name}
}

// NewPublisher resolves the publish side of a named transport. Resolution
// failure is a construction-time error; no half-initialized plugin is ever
// returned.
func (r *Registry) NewPublisher(name string) (Publisher, error) {
	r.mu.RLock()
	factory, ok := r.publishers[PublisherLookupName(name)]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown frame transport: %q (registered: %v)", name, r.Names())
	}
	return factory(), nil
}

// NewSubscriber resolves the subscribe side of a named transport.
func (r *Registry) NewSubscriber(name string) (Subscriber, error) {
	r.mu.RLock()
	factory, ok := r.subscribers[SubscriberLookupName(name)]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown frame transport: %q (registered: %v)", name, r.Names())
	}
	return factory(), nil
}

// Names returns the registered transport names (without lookup suffixes).
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.capabilities))
	for name := range r.capabilities {
		names = append(names, name)
	}
	return names
}

// Has returns true if a transport is registered with the given name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.capabilities[name]
	return ok
}

// Register adds a transport to the default registry.
func Register(name string, pf PublisherFactory, sf SubscriberFactory, caps Capabilities) {
	DefaultRegistry.Register(name, pf, sf, caps)
}

// NewPublisher resolves a publisher plugin from the default registry.
func NewPublisher(name string) (Publisher, error) {
	return DefaultRegistry.NewPublisher(name)
}

// NewSubscriber resolves a subscriber plugin from the default registry.
func NewSubscriber(name string) (Subscriber, error) {
	return DefaultRegistry.NewSubscriber(name)
}

// GetCapabilities returns the capabilities for a transport by name from the
// default registry.
func GetCapabilities(name string) Capabilities {
	return DefaultRegistry.GetCapabilities(name)
}
