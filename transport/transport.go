// Package transport defines the frame transport plugin contract: a named
// strategy for encoding a canonical frame into a wire message on the publish
// side and decoding it back on the subscribe side. Each transport (raw,
// compressed, ...) lives in its own sub-package and registers itself with
// the transport registry under frameflow/<name>_pub and frameflow/<name>_sub
// lookup names.
package transport

import (
	"errors"

	"github.com/drblury/frameflow/frame"
	"github.com/drblury/frameflow/wire"
)

var (
	// ErrNotAdvertised is returned (and logged) when a publish method is
	// called before a successful Advertise or after Shutdown. The call is a
	// no-op; it never panics.
	ErrNotAdvertised = errors.New("frameflow: publish on a transport that is not advertised")

	// ErrNotSubscribed is the subscribe-side analog of ErrNotAdvertised.
	ErrNotSubscribed = errors.New("frameflow: access to a transport that is not subscribed")

	// ErrOwnedPublishUnsupported signals a plugin contract violation: an
	// owned publish was requested from a plugin that neither supports
	// ownership transfer nor provides a copy fallback.
	ErrOwnedPublishUnsupported = errors.New("frameflow: owned publish is not implemented by this transport")

	// ErrCopyPublishUnsupported signals the inverse contract violation: a
	// copy publish on a plugin that only implements the owned form.
	ErrCopyPublishUnsupported = errors.New("frameflow: copy publish is not implemented by this transport")

	// ErrShutdown is returned when an Advertise or Subscribe is attempted on
	// an instance that has already been shut down. Shutdown is terminal; a
	// new plugin instance must be resolved from the registry instead.
	ErrShutdown = errors.New("frameflow: transport has been shut down")
)

// Publisher is the publish side of a frame transport plugin.
//
// Advertise must succeed before any publish call; publishing earlier is a
// reported error, not a panic. Shutdown is idempotent and terminal: an
// instance is not reusable afterwards.
type Publisher interface {
	// TransportName identifies the transport ("raw", "compressed", ...).
	TransportName() string

	// Advertise resolves the sub-topic for baseTopic (default
	// base + "/" + name) and opens the underlying channel on the bus.
	Advertise(bus *wire.Bus, baseTopic string, qos wire.QoS) error

	// Publish sends a frame with copy semantics: the caller keeps the frame.
	Publish(f *frame.Frame) error

	// PublishOwned sends a frame transferring buffer ownership; the caller
	// must not touch the frame afterwards. Plugins that cannot take
	// advantage of ownership fall back to the copy path; only a plugin
	// lacking both paths returns ErrOwnedPublishUnsupported.
	PublishOwned(f *frame.Frame) error

	// SupportsOwnedPublish reports whether PublishOwned avoids a copy.
	// Callers wanting zero-copy must check this first.
	SupportsOwnedPublish() bool

	// NumSubscribers returns the subscriber count the bus can see on the
	// advertised topic.
	NumSubscribers() int

	// Topic returns the resolved wire topic, or "" before Advertise.
	Topic() string

	// Shutdown closes the advertisement. Safe to call repeatedly.
	Shutdown()
}

// Callback receives each decoded frame on the subscribe side.
type Callback func(*frame.Frame)

// Subscriber is the subscribe side of a frame transport plugin. Its contract
// mirrors Publisher: resolve the sub-topic, decode each wire message back
// into a frame, and hand it to a single user callback. A message that fails
// to decode is dropped with a diagnostic; the subscription keeps running.
type Subscriber interface {
	TransportName() string
	Subscribe(bus *wire.Bus, baseTopic string, cb Callback, qos wire.QoS) error
	NumPublishers() int
	Topic() string
	Shutdown()
}

// Capabilities describes a frame transport. SupportsOwnedPublish here is
// advisory registry metadata; the authoritative flag is on the Publisher.
type Capabilities struct {
	// Name is the transport name.
	Name string

	// SupportsOwnedPublish indicates the transport has a zero-copy path.
	SupportsOwnedPublish bool

	// Lossless indicates decode(encode(f)) reproduces the pixel data
	// exactly.
	Lossless bool
}
