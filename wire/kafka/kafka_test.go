package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v3/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drblury/frameflow/wire"
)

type mockConfig struct {
	brokers       []string
	consumerGroup string
}

func (m *mockConfig) GetWireSystem() string            { return BackendName }
func (m *mockConfig) GetNamespace() string             { return "" }
func (m *mockConfig) GetRemappings() map[string]string { return nil }
func (m *mockConfig) GetKafkaBrokers() []string        { return m.brokers }
func (m *mockConfig) GetKafkaConsumerGroup() string    { return m.consumerGroup }
func (m *mockConfig) GetRabbitMQURL() string           { return "" }
func (m *mockConfig) GetNATSURL() string               { return "" }
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
	return nil, nil
}
func (m *mockSubscriber) Close() error { return nil }

func TestRegisteredOnImport(t *testing.T) {
	assert.True(t, wire.DefaultRegistry.Has(BackendName))
	assert.Equal(t, BackendName, wire.GetCapabilities(BackendName).Name)
}

func TestBuildUsesFactories(t *testing.T) {
	originalPubFactory := PublisherFactory
	originalSubFactory := SubscriberFactory
	defer func() {
		PublisherFactory = originalPubFactory
		SubscriberFactory = originalSubFactory
	}()

	mockPub := &mockPublisher{}
	mockSub := &mockSubscriber{}

	var gotPubCfg kafka.PublisherConfig
	var gotSubCfg kafka.SubscriberConfig
	PublisherFactory = func(cfg kafka.PublisherConfig, logger watermill.LoggerAdapter) (message.Publisher, error) {
		gotPubCfg = cfg
		return mockPub, nil
	}
	SubscriberFactory = func(cfg kafka.SubscriberConfig, logger watermill.LoggerAdapter) (message.Subscriber, error) {
		gotSubCfg = cfg
		return mockSub, nil
	}

	cfg := &mockConfig{
		brokers:       []string{"localhost:9092"},
		consumerGroup: "frames",
	}
	eps, err := Build(context.Background(), cfg, watermill.NopLogger{})

	require.NoError(t, err)
	assert.Equal(t, mockPub, eps.Publisher)
	assert.Equal(t, mockSub, eps.Subscriber)
	assert.Equal(t, []string{"localhost:9092"}, gotPubCfg.Brokers)
	assert.Equal(t, "frames", gotSubCfg.ConsumerGroup)
}

func TestBuildPublisherError(t *testing.T) {
	originalPubFactory := PublisherFactory
	defer func() { PublisherFactory = originalPubFactory }()

	PublisherFactory = func(cfg kafka.PublisherConfig, logger watermill.LoggerAdapter) (message.Publisher, error) {
		return nil, errors.New("broker unreachable")
	}

	_, err := Build(context.Background(), &mockConfig{}, watermill.NopLogger{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker unreachable")
}
