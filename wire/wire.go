// Package wire defines the underlying delivery bus that frame transports
// publish and subscribe through. Each backend (channel, kafka, nats,
// rabbitmq, http, aws, jetstream) lives in its own sub-package and registers
// itself with the wire registry; Build turns a Config into a ready Bus.
package wire

import (
	"context"
	"strings"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// DefaultQueueDepth is the queue depth used when a QoS profile leaves Depth
// unset. It also bounds the synchronized subscriber's pairing buffer.
const DefaultQueueDepth = 10

// QoS is the quality-of-service profile handed through advertise and
// subscribe calls. Backends map it onto whatever the broker supports.
type QoS struct {
	// Depth bounds per-topic buffering. Zero means DefaultQueueDepth.
	Depth int

	// Durable requests broker-side persistence where the backend has any.
	Durable bool
}

// DepthOrDefault returns Depth, substituting DefaultQueueDepth for zero.
func (q QoS) DepthOrDefault() int {
	if q.Depth > 0 {
		return q.Depth
	}
	return DefaultQueueDepth
}

// Introspector is implemented by backends that can report per-topic endpoint
// counts. Brokers that cannot see their peers simply don't implement it and
// counts read as zero.
type Introspector interface {
	PublisherCount(topic string) int
	SubscriberCount(topic string) int
}

// Endpoints is the publisher/subscriber pair produced by a backend builder.
type Endpoints struct {
	Publisher  message.Publisher
	Subscriber message.Subscriber

	// Introspect is optional; see Introspector.
	Introspect Introspector
}

// Builder is the function signature for creating backend endpoints from
// config. Each backend package provides a Builder that can be registered.
type Builder func(ctx context.Context, cfg Config, logger watermill.LoggerAdapter) (Endpoints, error)

// Config provides the configuration values needed by wire backends. The
// interface lets backends access only the keys they need without depending
// on the root config package.
type Config interface {
	// GetWireSystem returns the backend name ("channel", "kafka", ...).
	GetWireSystem() string

	// GetNamespace returns the namespace prepended to relative topic names.
	GetNamespace() string

	// GetRemappings returns exact-match topic remappings applied before
	// namespace resolution.
	GetRemappings() map[string]string

	// Kafka
	GetKafkaBrokers() []string
	GetKafkaConsumerGroup() string

	// RabbitMQ
	GetRabbitMQURL() string

	// NATS (core and JetStream)
	GetNATSURL() string
	GetJetStreamName() string

	// HTTP
	GetHTTPServerAddress() string
	GetHTTPPublisherURL() string

	// AWS
	GetAWSRegion() string
	GetAWSAccountID() string
	GetAWSAccessKeyID() string
	GetAWSSecretAccessKey() string
	GetAWSEndpoint() string
}

// Bus is a built delivery bus: endpoints plus the name-resolution context
// shared by every publisher and subscriber created against it. A single Bus
// is long-lived and borrowed by all facades; none of them owns it.
type Bus struct {
	Publisher  message.Publisher
	Subscriber message.Subscriber
	Logger     watermill.LoggerAdapter

	// Namespace and Remappings drive ResolveTopic.
	Namespace  string
	Remappings map[string]string

	// Introspect is optional; nil means counts read as zero.
	Introspect Introspector
}

// ResolveTopic expands a base topic name: exact remappings first, then the
// bus namespace for relative names. Absolute names (leading "/") and names
// already under the namespace pass through, so resolution is idempotent.
func (b *Bus) ResolveTopic(base string) string {
	if b == nil {
		return base
	}
	if mapped, ok := b.Remappings[base]; ok {
		base = mapped
	}
	ns := strings.TrimSuffix(b.Namespace, "/")
	if ns == "" || strings.HasPrefix(base, "/") || strings.HasPrefix(base, ns+"/") {
		return base
	}
	return ns + "/" + base
}

// PublisherCount reports how many publishers the backend can see on a topic.
func (b *Bus) PublisherCount(topic string) int {
	if b == nil || b.Introspect == nil {
		return 0
	}
	return b.Introspect.PublisherCount(topic)
}

// SubscriberCount reports how many subscribers the backend can see on a topic.
func (b *Bus) SubscriberCount(topic string) int {
	if b == nil || b.Introspect == nil {
		return 0
	}
	return b.Introspect.SubscriberCount(topic)
}

// LoggerOrNop returns the bus logger, falling back to a NopLogger so callers
// can log unconditionally.
func (b *Bus) LoggerOrNop() watermill.LoggerAdapter {
	if b == nil || b.Logger == nil {
		return watermill.NopLogger{}
	}
	return b.Logger
}
