package wire

// Capabilities describes what a wire backend can do. Frame transports use
// this to decide, for example, whether a large raw stream should prefer a
// backend with ordering, or whether endpoint counts are meaningful.
type Capabilities struct {
	// Name is the human-readable name of the backend.
	Name string

	// Ordered indicates delivery order follows publish order per topic.
	Ordered bool

	// Durable indicates messages survive a broker restart.
	Durable bool

	// Introspectable indicates PublisherCount/SubscriberCount return real
	// values rather than zero.
	Introspectable bool

	// SupportsAck indicates the backend supports explicit acknowledgment.
	SupportsAck bool

	// MaxMessageSize is the maximum payload size in bytes (0 = unknown).
	// Raw frames can exceed broker limits easily; the compressed transport
	// exists for exactly that case.
	MaxMessageSize int64
}

// FitsPayload reports whether a payload of the given size is within the
// backend's message size limit.
func (c Capabilities) FitsPayload(size int64) bool {
	return c.MaxMessageSize == 0 || size <= c.MaxMessageSize
}

// Predefined capability sets for the built-in backends.
var (
	// ChannelCapabilities for the in-memory Go channel backend.
	ChannelCapabilities = Capabilities{
		Name:           "channel",
		Ordered:        true,
		Introspectable: true,
		SupportsAck:    true,
	}

	// KafkaCapabilities for the Apache Kafka backend.
	KafkaCapabilities = Capabilities{
		Name:           "kafka",
		Ordered:        true,
		Durable:        true,
		SupportsAck:    true,
		MaxMessageSize: 1048576, // Default 1MB
	}

	// RabbitMQCapabilities for the RabbitMQ/AMQP backend.
	RabbitMQCapabilities = Capabilities{
		Name:        "rabbitmq",
		Ordered:     true,
		Durable:     true,
		SupportsAck: true,
	}

	// NATSCapabilities for the NATS Core backend.
	NATSCapabilities = Capabilities{
		Name:           "nats",
		MaxMessageSize: 1048576, // Default 1MB
	}

	// JetStreamCapabilities for the NATS JetStream backend.
	JetStreamCapabilities = Capabilities{
		Name:           "jetstream",
		Ordered:        true,
		Durable:        true,
		SupportsAck:    true,
		MaxMessageSize: 1048576, // Default 1MB
	}

	// HTTPCapabilities for the HTTP backend.
	HTTPCapabilities = Capabilities{
		Name: "http",
	}

	// AWSCapabilities for the AWS SNS/SQS backend.
	AWSCapabilities = Capabilities{
		Name:           "aws",
		Ordered:        true,
		Durable:        true,
		SupportsAck:    true,
		MaxMessageSize: 262144, // 256KB
	}
)
