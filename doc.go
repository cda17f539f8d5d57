// Package frameflow is a small layer on top of Watermill for moving camera
// frames and their calibration records between processes. It reads the target
// wire system (Kafka, RabbitMQ, AWS SNS/SQS, NATS, JetStream, HTTP, or Go
// channels) from Config, builds a shared Bus, and resolves topic names
// through a namespace and exact-match remappings so the same code runs under
// different deployments.
//
// On top of the bus sit named frame transports. A transport decides how a
// frame's pixel buffer travels on the wire: the built-in "raw" transport
// ships it untouched with a zero-copy publish path, and "compressed" runs it
// through zstd for bandwidth-constrained links. Transports register
// themselves in a registry and are resolved by name, so applications pick a
// transport per link without changing publish or subscribe code.
//
// # Facades
//
// Four facades cover the common cases:
//   - camera.Publisher: one frame stream through a chosen transport
//   - camera.Subscriber: one frame stream delivered to a callback
//   - camera.CameraPublisher: frames plus calibration on a sibling topic
//   - camera.CameraSubscriber: time-matched frame and calibration pairs,
//     with a watchdog that warns when the two streams stop pairing up
//
// A minimal setup fills Config, builds a bus with wire.Build, and creates a
// facade; see README.md for a copy/paste quick start snippet.
//
// # Wire backends
//
// Frameflow supports 7 wire backends out of the box:
//   - channel: In-memory Go channels for testing, with local pub/sub counts
//   - kafka: High-throughput streaming with consumer groups
//   - rabbitmq: AMQP-based durable queues
//   - nats: High-performance core NATS messaging
//   - jetstream: NATS JetStream with persistent streams
//   - http: Request/response messaging
//   - aws: AWS SNS/SQS with LocalStack support
//
// Backends register themselves with the wire registry; custom backends can
// be added the same way via wire.Register.
package frameflow
