// Package raw provides the default frame transport: the pixel buffer is the
// message payload, untouched, with the header and geometry in metadata. It
// is the only built-in transport with a true zero-copy publish path.
package raw

import (
	"slices"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/drblury/frameflow/frame"
	"github.com/drblury/frameflow/transport"
)

// TransportName is the name used to register this transport.
const TransportName = "raw"

func init() {
	transport.Register(TransportName, NewPublisher, NewSubscriber, Capabilities())
}

// Capabilities returns the capabilities of this transport.
func Capabilities() transport.Capabilities {
	return transport.Capabilities{
		Name:                 TransportName,
		SupportsOwnedPublish: true,
		Lossless:             true,
	}
}

// NewPublisher creates the publish side of the raw transport.
func NewPublisher() transport.Publisher {
	return transport.NewSimplePublisher(TransportName, encodeCopy,
		transport.WithOwnedEncode(encodeOwned))
}

// NewSubscriber creates the subscribe side of the raw transport.
func NewSubscriber() transport.Subscriber {
	return transport.NewSimpleSubscriber(TransportName, decode)
}

func encodeCopy(f *frame.Frame) (*message.Message, error) {
	return newMessage(f, slices.Clone(f.Data)), nil
}

// encodeOwned reuses the frame's pixel buffer as the payload. The caller
// has transferred ownership, so no clone is needed.
func encodeOwned(f *frame.Frame) (*message.Message, error) {
	return newMessage(f, f.Data), nil
}

func newMessage(f *frame.Frame, payload []byte) *message.Message {
	msg := message.NewMessage(watermill.NewUUID(), payload)
	transport.SetFrameMetadata(msg, f)
	return msg
}

func decode(msg *message.Message) (*frame.Frame, error) {
	f, err := transport.FrameFromMetadata(msg)
	if err != nil {
		return nil, err
	}
	f.Data = msg.Payload
	return f, nil
}
