package nats

import (
	"context"
	"errors"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drblury/frameflow/wire"
)

func TestRegister(t *testing.T) {
	wire.DefaultRegistry = wire.NewRegistry()
	Register()

	assert.True(t, wire.DefaultRegistry.Has(BackendName))
	caps := wire.GetCapabilities(BackendName)
	assert.Equal(t, "nats", caps.Name)
	assert.False(t, caps.Durable)
	assert.False(t, caps.Introspectable)
}

func TestCapabilities(t *testing.T) {
	caps := Capabilities()
	assert.Equal(t, wire.NATSCapabilities, caps)
	assert.Equal(t, "nats", caps.Name)
}

func TestBackendName(t *testing.T) {
	assert.Equal(t, "nats", BackendName)
}

func TestBuild(t *testing.T) {
	t.Run("creates endpoints with mocked factories", func(t *testing.T) {
		originalPubFactory := PublisherFactory
		originalSubFactory := SubscriberFactory
		defer func() {
			PublisherFactory = originalPubFactory
			SubscriberFactory = originalSubFactory
		}()

		mockPub := &mockPublisher{}
		mockSub := &mockSubscriber{}

		var gotPubCfg nats.PublisherConfig
		var gotSubCfg nats.SubscriberConfig
		PublisherFactory = func(cfg nats.PublisherConfig, logger watermill.LoggerAdapter) (message.Publisher, error) {
			gotPubCfg = cfg
			return mockPub, nil
		}
		SubscriberFactory = func(cfg nats.SubscriberConfig, logger watermill.LoggerAdapter) (message.Subscriber, error) {
			gotSubCfg = cfg
			return mockSub, nil
		}

		cfg := &mockConfig{natsURL: "nats://localhost:4222"}
		eps, err := Build(context.Background(), cfg, watermill.NopLogger{})

		require.NoError(t, err)
		assert.Equal(t, mockPub, eps.Publisher)
		assert.Equal(t, mockSub, eps.Subscriber)
		assert.Equal(t, "nats://localhost:4222", gotPubCfg.URL)
		assert.Equal(t, "nats://localhost:4222", gotSubCfg.URL)
	})

	t.Run("returns error when publisher factory fails", func(t *testing.T) {
		originalPubFactory := PublisherFactory
		defer func() { PublisherFactory = originalPubFactory }()

		PublisherFactory = func(cfg nats.PublisherConfig, logger watermill.LoggerAdapter) (message.Publisher, error) {
			return nil, errors.New("publisher error")
		}

		cfg := &mockConfig{natsURL: "nats://localhost:4222"}
		_, err := Build(context.Background(), cfg, watermill.NopLogger{})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "publisher error")
	})

	t.Run("returns error when subscriber factory fails", func(t *testing.T) {
		originalPubFactory := PublisherFactory
		originalSubFactory := SubscriberFactory
		defer func() {
			PublisherFactory = originalPubFactory
			SubscriberFactory = originalSubFactory
		}()

		PublisherFactory = func(cfg nats.PublisherConfig, logger watermill.LoggerAdapter) (message.Publisher, error) {
			return &mockPublisher{}, nil
		}
		SubscriberFactory = func(cfg nats.SubscriberConfig, logger watermill.LoggerAdapter) (message.Subscriber, error) {
			return nil, errors.New("subscriber error")
		}

		cfg := &mockConfig{natsURL: "nats://localhost:4222"}
		_, err := Build(context.Background(), cfg, watermill.NopLogger{})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "subscriber error")
	})
}

type mockConfig struct {
	natsURL string
}

func (m *mockConfig) GetWireSystem() string            { return BackendName }
func (m *mockConfig) GetNamespace() string             { return "" }
func (m *mockConfig) GetRemappings() map[string]string { return nil }
func (m *mockConfig) GetKafkaBrokers() []string        { return nil }
func (m *mockConfig) GetKafkaConsumerGroup() string    { return "" }
func (m *mockConfig) GetRabbitMQURL() string           { return "" }
func (m *mockConfig) GetNATSURL() string               { return m.natsURL }
func (m *mockConfig) GetJetStreamName() string         { return "" }
func (m *mockConfig) GetHTTPServerAddress() string     { return "" }
func (m *mockConfig) GetHTTPPublisherURL() string      { return "" }
func (m *mockConfig) GetAWSRegion() string             { return "" }
func (m *mockConfig) GetAWSAccountID() string          { return "" }
func (m *mockConfig) GetAWSAccessKeyID() string        { return "" }
func (m *mockConfig) GetAWSSecretAccessKey() string    { return "" }
func (m *mockConfig) GetAWSEndpoint() string           { return "" }

type mockPublisher struct{}

func (m *mockPublisher) Publish(topic string, messages ...*message.Message) error { return nil }
func (m *mockPublisher) Close() error                                             { return nil }

type mockSubscriber struct{}

func (m *mockSubscriber) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return make(chan *message.Message), nil
}
func (m *mockSubscriber) Close() error { return nil }
