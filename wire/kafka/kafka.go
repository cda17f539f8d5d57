// Package kafka provides an Apache Kafka wire backend.
package kafka

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v3/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/drblury/frameflow/wire"
)

// BackendName is the name used to register this backend.
const BackendName = "kafka"

// PublisherFactory allows overriding the publisher creation for testing.
var PublisherFactory = func(cfg kafka.PublisherConfig, logger watermill.LoggerAdapter) (message.Publisher, error) {
	return kafka.NewPublisher(cfg, logger)
}

// SubscriberFactory allows overriding the subscriber creation for testing.
var SubscriberFactory = func(cfg kafka.SubscriberConfig, logger watermill.LoggerAdapter) (message.Subscriber, error) {
	return kafka.NewSubscriber(cfg, logger)
}

func init() {
	wire.RegisterWithCapabilities(BackendName, Build, wire.KafkaCapabilities)
}

// Build creates new Kafka endpoints.
func Build(ctx context.Context, cfg wire.Config, logger watermill.LoggerAdapter) (wire.Endpoints, error) {
	brokers := cfg.GetKafkaBrokers()
	consumerGroup := cfg.GetKafkaConsumerGroup()

	publisher, err := PublisherFactory(
		kafka.PublisherConfig{
			Brokers:   brokers,
			Marshaler: kafka.DefaultMarshaler{},
		},
		logger,
	)
	if err != nil {
		return wire.Endpoints{}, err
	}

	subscriber, err := SubscriberFactory(
		kafka.SubscriberConfig{
			Brokers:       brokers,
			Unmarshaler:   kafka.DefaultMarshaler{},
			ConsumerGroup: consumerGroup,
		},
		logger,
	)
	if err != nil {
		return wire.Endpoints{}, err
	}

	return wire.Endpoints{
		Publisher:  publisher,
		Subscriber: subscriber,
	}, nil
}

// Capabilities returns the capabilities of this backend.
func Capabilities() wire.Capabilities {
	return wire.KafkaCapabilities
}
