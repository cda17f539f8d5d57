// Package jetstream provides a NATS JetStream wire backend with stream
// auto-provisioning. Unlike core NATS it gives durable, ordered delivery,
// which matters when a frame stream feeds offline processing rather than a
// live view.
package jetstream

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/nats-io/nats.go"

	"github.com/drblury/frameflow/wire"
)

// BackendName is the name used to register this backend.
const BackendName = "jetstream"

const (
	// DefaultStreamName is used when the config leaves the stream unset.
	DefaultStreamName = "FRAMEFLOW"

	// DefaultAckWait is the default ack wait timeout.
	DefaultAckWait = 30 * time.Second

	fetchBatch = 10
)

func init() {
	wire.RegisterWithCapabilities(BackendName, Build, wire.JetStreamCapabilities)
}

// Build creates a new JetStream transport serving as both endpoints.
func Build(ctx context.Context, cfg wire.Config, logger watermill.LoggerAdapter) (wire.Endpoints, error) {
	t, err := New(Config{
		URL:        cfg.GetNATSURL(),
		StreamName: cfg.GetJetStreamName(),
	}, logger)
	if err != nil {
		return wire.Endpoints{}, err
	}

	return wire.Endpoints{
		Publisher:  t,
		Subscriber: t,
	}, nil
}

// Capabilities returns the capabilities of this backend.
func Capabilities() wire.Capabilities {
	return wire.JetStreamCapabilities
}

// Config holds JetStream-specific configuration.
type Config struct {
	// URL is the NATS server URL.
	URL string

	// StreamName is the JetStream stream holding all frame topics.
	// Empty defaults to DefaultStreamName.
	StreamName string

	// AckWait is the duration to wait for acknowledgment.
	AckWait time.Duration

	// Replicas is the number of stream replicas (for clustering).
	Replicas int
}

func (c Config) withDefaults() Config {
	if c.StreamName == "" {
		c.StreamName = DefaultStreamName
	}
	if c.AckWait <= 0 {
		c.AckWait = DefaultAckWait
	}
	if c.Replicas <= 0 {
		c.Replicas = 1
	}
	return c
}

// Transport implements message.Publisher and message.Subscriber on top of a
// single JetStream stream, one subject per topic.
type Transport struct {
	nc     *nats.Conn
	js     nats.JetStreamContext
	config Config
	logger watermill.LoggerAdapter

	subMu         sync.Mutex
	subscriptions map[string]*nats.Subscription

	closedMu   sync.RWMutex
	closed     bool
	closedChan chan struct{}
}

// New connects to NATS and provisions the stream.
func New(cfg Config, logger watermill.LoggerAdapter) (*Transport, error) {
	cfg = cfg.withDefaults()

	nc, err := nats.Connect(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	t := &Transport{
		nc:            nc,
		js:            js,
		config:        cfg,
		logger:        logger,
		subscriptions: make(map[string]*nats.Subscription),
		closedChan:    make(chan struct{}),
	}

	if err := t.ensureStream(); err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to ensure stream: %w", err)
	}

	return t, nil
}

func (t *Transport) ensureStream() error {
	streamCfg := &nats.StreamConfig{
		Name:      t.config.StreamName,
		Subjects:  []string{t.config.StreamName + ".>"},
		Retention: nats.LimitsPolicy,
		MaxAge:    24 * time.Hour,
		Replicas:  t.config.Replicas,
	}

	if _, err := t.js.AddStream(streamCfg); err != nil {
		if _, err := t.js.UpdateStream(streamCfg); err != nil && t.logger != nil {
			t.logger.Info("JetStream stream exists", watermill.LogFields{
				"stream": t.config.StreamName,
			})
		}
	}

	return nil
}

// Publish publishes messages to the stream subject for the topic.
func (t *Transport) Publish(topic string, messages ...*message.Message) error {
	if t.isClosed() {
		return fmt.Errorf("jetstream transport is closed")
	}

	subject := t.topicToSubject(topic)

	for _, msg := range messages {
		headers := nats.Header{}
		for k, v := range msg.Metadata {
			headers.Set(k, v)
		}
		headers.Set("ff_id", msg.UUID)

		if _, err := t.js.PublishMsg(&nats.Msg{
			Subject: subject,
			Data:    msg.Payload,
			Header:  headers,
		}); err != nil {
			return fmt.Errorf("failed to publish to JetStream: %w", err)
		}
	}

	return nil
}

// Subscribe subscribes to a topic and returns a channel of messages.
func (t *Transport) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	if t.isClosed() {
		return nil, fmt.Errorf("jetstream transport is closed")
	}

	subject := t.topicToSubject(topic)
	consumerName := t.topicToConsumer(topic)

	consumerCfg := &nats.ConsumerConfig{
		Durable:       consumerName,
		FilterSubject: subject,
		AckPolicy:     nats.AckExplicitPolicy,
		AckWait:       t.config.AckWait,
		DeliverPolicy: nats.DeliverNewPolicy,
	}

	if _, err := t.js.AddConsumer(t.config.StreamName, consumerCfg); err != nil {
		if _, err := t.js.UpdateConsumer(t.config.StreamName, consumerCfg); err != nil {
			return nil, fmt.Errorf("failed to create consumer: %w", err)
		}
	}

	sub, err := t.js.PullSubscribe(subject, consumerName)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	t.subMu.Lock()
	t.subscriptions[topic] = sub
	t.subMu.Unlock()

	output := make(chan *message.Message)
	go t.fetchMessages(ctx, sub, output, topic)

	return output, nil
}

func (t *Transport) fetchMessages(ctx context.Context, sub *nats.Subscription, output chan<- *message.Message, topic string) {
	defer close(output)

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.closedChan:
			return
		default:
		}

		msgs, err := sub.Fetch(fetchBatch, nats.MaxWait(time.Second))
		if err != nil {
			if err == nats.ErrTimeout {
				continue
			}
			if t.logger != nil {
				t.logger.Error("Failed to fetch messages", err, watermill.LogFields{
					"topic": topic,
				})
			}
			continue
		}

		for _, natsMsg := range msgs {
			wmMsg := t.natsToWatermill(natsMsg)

			select {
			case output <- wmMsg:
				select {
				case <-wmMsg.Acked():
					if err := natsMsg.Ack(); err != nil && t.logger != nil {
						t.logger.Error("Failed to ack", err, nil)
					}
				case <-wmMsg.Nacked():
					if err := natsMsg.Nak(); err != nil && t.logger != nil {
						t.logger.Error("Failed to nak", err, nil)
					}
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}
}

func (t *Transport) natsToWatermill(natsMsg *nats.Msg) *message.Message {
	msgID := natsMsg.Header.Get("ff_id")
	if msgID == "" {
		msgID = watermill.NewUUID()
	}

	wmMsg := message.NewMessage(msgID, natsMsg.Data)
	for k, v := range natsMsg.Header {
		if len(v) > 0 {
			wmMsg.Metadata.Set(k, v[0])
		}
	}
	return wmMsg
}

// Topic names may contain "/" (e.g. /cam/image_raw/raw), which is not valid
// in NATS subjects or durable names.
func sanitizeTopic(topic string) string {
	return strings.NewReplacer("/", "_", ".", "_", " ", "_").Replace(strings.TrimPrefix(topic, "/"))
}

func (t *Transport) topicToSubject(topic string) string {
	return t.config.StreamName + "." + sanitizeTopic(topic)
}

func (t *Transport) topicToConsumer(topic string) string {
	return "consumer_" + sanitizeTopic(topic)
}

func (t *Transport) isClosed() bool {
	t.closedMu.RLock()
	defer t.closedMu.RUnlock()
	return t.closed
}

// Close closes the JetStream transport.
func (t *Transport) Close() error {
	t.closedMu.Lock()
	if t.closed {
		t.closedMu.Unlock()
		return nil
	}
	t.closed = true
	close(t.closedChan)
	t.closedMu.Unlock()

	t.subMu.Lock()
	for _, sub := range t.subscriptions {
		sub.Unsubscribe()
	}
	t.subscriptions = make(map[string]*nats.Subscription)
	t.subMu.Unlock()

	t.nc.Close()

	return nil
}
