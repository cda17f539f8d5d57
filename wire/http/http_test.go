package http

import (
	"context"
	"errors"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	watermillhttp "github.com/ThreeDotsLabs/watermill-http/v2/pkg/http"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drblury/frameflow/wire"
)

func TestRegisteredOnImport(t *testing.T) {
	assert.True(t, wire.DefaultRegistry.Has(BackendName))
	caps := wire.GetCapabilities(BackendName)
	assert.Equal(t, "http", caps.Name)
	assert.False(t, caps.Durable)
}

func TestCapabilities(t *testing.T) {
	caps := Capabilities()
	assert.Equal(t, wire.HTTPCapabilities, caps)
	assert.Equal(t, "http", caps.Name)
}

func TestBackendName(t *testing.T) {
	assert.Equal(t, "http", BackendName)
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

		var gotPubCfg watermillhttp.PublisherConfig
		var gotAddr string
		PublisherFactory = func(cfg watermillhttp.PublisherConfig, logger watermill.LoggerAdapter) (message.Publisher, error) {
			gotPubCfg = cfg
			return mockPub, nil
		}
		SubscriberFactory = func(addr string, cfg watermillhttp.SubscriberConfig, logger watermill.LoggerAdapter) (message.Subscriber, error) {
			gotAddr = addr
			return mockSub, nil
		}

		cfg := &mockConfig{
			httpServerAddress: ":8080",
			httpPublisherURL:  "http://localhost:8080",
		}
		eps, err := Build(context.Background(), cfg, watermill.NopLogger{})

		require.NoError(t, err)
		assert.Equal(t, mockPub, eps.Publisher)
		assert.Equal(t, mockSub, eps.Subscriber)
		assert.Equal(t, ":8080", gotAddr)

		// The marshal func routes each topic under the publisher URL.
		req, err := gotPubCfg.MarshalMessageFunc("/cam0/image_raw/raw", message.NewMessage("id", nil))
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080/cam0/image_raw/raw", req.URL.String())
	})

	t.Run("returns error when publisher factory fails", func(t *testing.T) {
		originalPubFactory := PublisherFactory
		defer func() { PublisherFactory = originalPubFactory }()

		PublisherFactory = func(cfg watermillhttp.PublisherConfig, logger watermill.LoggerAdapter) (message.Publisher, error) {
			return nil, errors.New("publisher error")
		}

		_, err := Build(context.Background(), &mockConfig{}, watermill.NopLogger{})

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

		PublisherFactory = func(cfg watermillhttp.PublisherConfig, logger watermill.LoggerAdapter) (message.Publisher, error) {
			return &mockPublisher{}, nil
		}
		SubscriberFactory = func(addr string, cfg watermillhttp.SubscriberConfig, logger watermill.LoggerAdapter) (message.Subscriber, error) {
			return nil, errors.New("subscriber error")
		}

		_, err := Build(context.Background(), &mockConfig{}, watermill.NopLogger{})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "subscriber error")
	})
}

type mockConfig struct {
	httpServerAddress string
	httpPublisherURL  string
}

func (m *mockConfig) GetWireSystem() string            { return BackendName }
func (m *mockConfig) GetNamespace() string             { return "" }
func (m *mockConfig) GetRemappings() map[string]string { return nil }
func (m *mockConfig) GetKafkaBrokers() []string        { return nil }
func (m *mockConfig) GetKafkaConsumerGroup() string    { return "" }
func (m *mockConfig) GetRabbitMQURL() string           { return "" }
func (m *mockConfig) GetNATSURL() string               { return "" }
func (m *mockConfig) GetJetStreamName() string         { return "" }
func (m *mockConfig) GetHTTPServerAddress() string     { return m.httpServerAddress }
func (m *mockConfig) GetHTTPPublisherURL() string      { return m.httpPublisherURL }
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
