// Package nats provides a NATS Core wire backend. Core NATS is fire-and-
// forget, which suits live frame streams where a lost frame is cheaper than
// a late one.
package nats

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/drblury/frameflow/wire"
)

// BackendName is the name used to register this backend.
const BackendName = "nats"

// PublisherFactory allows overriding the publisher creation for testing.
var PublisherFactory = func(cfg nats.PublisherConfig, logger watermill.LoggerAdapter) (message.Publisher, error) {
	return nats.NewPublisher(cfg, logger)
}

// SubscriberFactory allows overriding the subscriber creation for testing.
var SubscriberFactory = func(cfg nats.SubscriberConfig, logger watermill.LoggerAdapter) (message.Subscriber, error) {
	return nats.NewSubscriber(cfg, logger)
}

// Register registers the NATS backend with the default registry. Call it
// explicitly (or import this package for side effects via a wrapper) before
// building a bus with WireSystem "nats".
func Register() {
	wire.RegisterWithCapabilities(BackendName, Build, wire.NATSCapabilities)
}

// Build creates new NATS Core endpoints.
func Build(ctx context.Context, cfg wire.Config, logger watermill.LoggerAdapter) (wire.Endpoints, error) {
	url := cfg.GetNATSURL()
	marshaler := &nats.NATSMarshaler{}

	publisher, err := PublisherFactory(
		nats.PublisherConfig{
			URL:       url,
			Marshaler: marshaler,
		},
		logger,
	)
	if err != nil {
		return wire.Endpoints{}, err
	}

	subscriber, err := SubscriberFactory(
		nats.SubscriberConfig{
			URL:         url,
			Unmarshaler: marshaler,
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
	return wire.NATSCapabilities
}
