// Package channel provides an in-memory Go channel wire backend. It is the
// only built-in backend with full introspection, which makes it the natural
// choice for tests and single-process pipelines.
package channel

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/drblury/frameflow/wire"
)

// BackendName is the name used to register this backend.
const BackendName = "channel"

// Factory allows overriding the channel creation for testing.
var Factory = func(cfg gochannel.Config, logger watermill.LoggerAdapter) (message.Publisher, message.Subscriber) {
	pubSub := gochannel.NewGoChannel(cfg, logger)
	return pubSub, pubSub
}

func init() {
	wire.RegisterWithCapabilities(BackendName, Build, wire.ChannelCapabilities)
}

// Build creates new in-memory endpoints with local endpoint counting.
func Build(ctx context.Context, cfg wire.Config, logger watermill.LoggerAdapter) (wire.Endpoints, error) {
	pub, sub := Factory(gochannel.Config{
		OutputChannelBuffer: int64(wire.DefaultQueueDepth),
	}, logger)

	counts := newCounts()
	return wire.Endpoints{
		Publisher:  &countingPublisher{inner: pub, counts: counts},
		Subscriber: &countingSubscriber{inner: sub, counts: counts},
		Introspect: counts,
	}, nil
}

// Capabilities returns the capabilities of this backend.
func Capabilities() wire.Capabilities {
	return wire.ChannelCapabilities
}

// counts tracks per-topic endpoints for the in-memory backend. A topic gains
// a publisher the first time something is published to it; subscriber counts
// follow Subscribe calls and drop when the subscription context ends.
type counts struct {
	mu   sync.Mutex
	pubs map[string]bool
	subs map[string]int
}

func newCounts() *counts {
	return &counts{
		pubs: make(map[string]bool),
		subs: make(map[string]int),
	}
}

func (c *counts) PublisherCount(topic string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pubs[topic] {
		return 1
	}
	return 0
}

func (c *counts) SubscriberCount(topic string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.subs[topic]
}

func (c *counts) markPublisher(topic string) {
	c.mu.Lock()
	c.pubs[topic] = true
	c.mu.Unlock()
}

func (c *counts) addSubscriber(topic string, delta int) {
	c.mu.Lock()
	c.subs[topic] += delta
	c.mu.Unlock()
}

type countingPublisher struct {
	inner  message.Publisher
	counts *counts
}

func (p *countingPublisher) Publish(topic string, messages ...*message.Message) error {
	p.counts.markPublisher(topic)
	return p.inner.Publish(topic, messages...)
}

func (p *countingPublisher) Close() error {
	return p.inner.Close()
}

type countingSubscriber struct {
	inner  message.Subscriber
	counts *counts
}

func (s *countingSubscriber) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	ch, err := s.inner.Subscribe(ctx, topic)
	if err != nil {
		return nil, err
	}
	s.counts.addSubscriber(topic, 1)
	go func() {
		<-ctx.Done()
		s.counts.addSubscriber(topic, -1)
	}()
	return ch, nil
}

func (s *countingSubscriber) Close() error {
	return s.inner.Close()
}
