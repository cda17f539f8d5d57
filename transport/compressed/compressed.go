// Package compressed provides a zstd frame transport for links where raw
// pixel buffers exceed the wire backend's message size limit. Compression always
// copies, so this transport has no zero-copy path and owned publishes fall
// back to the copy encode.
package compressed

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/klauspost/compress/zstd"

	"github.com/drblury/frameflow/frame"
	"github.com/drblury/frameflow/transport"
)

// TransportName is the name used to register this transport.
const TransportName = "compressed"

// MetadataKeyCodec records the compression codec on each message so a
// subscriber can reject payloads it cannot inflate.
const MetadataKeyCodec = "ff_codec"

const codecZstd = "zstd"

var (
	encoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	decoder, _ = zstd.NewReader(nil)
)

// Register registers the compressed transport with the default registry.
// Call it explicitly before resolving the "compressed" transport by name.
func Register() {
	transport.Register(TransportName, NewPublisher, NewSubscriber, Capabilities())
}

// Capabilities returns the capabilities of this transport.
func Capabilities() transport.Capabilities {
	return transport.Capabilities{
		Name:                 TransportName,
		SupportsOwnedPublish: false,
		Lossless:             true,
	}
}

// NewPublisher creates the publish side of the compressed transport.
func NewPublisher() transport.Publisher {
	return transport.NewSimplePublisher(TransportName, encode)
}

// NewSubscriber creates the subscribe side of the compressed transport.
func NewSubscriber() transport.Subscriber {
	return transport.NewSimpleSubscriber(TransportName, decode)
}

func encode(f *frame.Frame) (*message.Message, error) {
	payload := encoder.EncodeAll(f.Data, nil)
	msg := message.NewMessage(watermill.NewUUID(), payload)
	transport.SetFrameMetadata(msg, f)
	msg.Metadata.Set(MetadataKeyCodec, codecZstd)
	return msg, nil
}

func decode(msg *message.Message) (*frame.Frame, error) {
	if codec := msg.Metadata.Get(MetadataKeyCodec); codec != codecZstd {
		return nil, fmt.Errorf("unsupported frame codec %q", codec)
	}

	f, err := transport.FrameFromMetadata(msg)
	if err != nil {
		return nil, err
	}

	data, err := decoder.DecodeAll(msg.Payload, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to inflate frame payload: %w", err)
	}
	f.Data = data
	return f, nil
}
