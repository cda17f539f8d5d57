package frameflow

import (
	"context"

	camerapkg "github.com/drblury/frameflow/camera"
	framepkg "github.com/drblury/frameflow/frame"
	configpkg "github.com/drblury/frameflow/internal/config"
	loggingpkg "github.com/drblury/frameflow/internal/logging"
	transportpkg "github.com/drblury/frameflow/transport"
	wirepkg "github.com/drblury/frameflow/wire"
)

type (
	Config = configpkg.Config

	Frame       = framepkg.Frame
	Calibration = framepkg.Calibration
	Header      = framepkg.Header

	// Wire layer
	Bus              = wirepkg.Bus
	QoS              = wirepkg.QoS
	WireBuilder      = wirepkg.Builder
	WireConfig       = wirepkg.Config
	WireRegistry     = wirepkg.Registry
	WireCapabilities = wirepkg.Capabilities
	WireEndpoints    = wirepkg.Endpoints
	WireIntrospector = wirepkg.Introspector

	// Frame transport layer
	Transport             = transportpkg.Publisher
	TransportSubscriber   = transportpkg.Subscriber
	TransportRegistry     = transportpkg.Registry
	TransportCapabilities = transportpkg.Capabilities
	Callback              = transportpkg.Callback

	// Facades
	Publisher        = camerapkg.Publisher
	Subscriber       = camerapkg.Subscriber
	CameraPublisher  = camerapkg.CameraPublisher
	CameraSubscriber = camerapkg.CameraSubscriber
	PairCallback     = camerapkg.PairCallback
	CameraMetrics    = camerapkg.Metrics

	LogFields     = loggingpkg.LogFields
	ServiceLogger = loggingpkg.ServiceLogger
)

var (
	ValidateConfig = configpkg.ValidateConfig

	BuildBus = wirepkg.Build

	NewPublisher        = camerapkg.NewPublisher
	NewSubscriber       = camerapkg.NewSubscriber
	NewCameraPublisher  = camerapkg.NewCameraPublisher
	NewCameraSubscriber = camerapkg.NewCameraSubscriber
	CalibrationTopic    = camerapkg.CalibrationTopic

	NewFrame = framepkg.New

	NewSimplePublisher  = transportpkg.NewSimplePublisher
	NewSimpleSubscriber = transportpkg.NewSimpleSubscriber
	RegisterTransport   = transportpkg.Register

	NewSlogServiceLogger      = loggingpkg.NewSlogServiceLogger
	NewWatermillServiceLogger = loggingpkg.NewWatermillServiceLogger
	NewWatermillAdapter       = loggingpkg.NewWatermillAdapter
)

// BuildBusWithLogger builds a wire bus from config, adapting a ServiceLogger
// onto the Watermill logging contract the backends expect. Applications that
// already hold a ServiceLogger use this instead of BuildBus.
func BuildBusWithLogger(ctx context.Context, cfg WireConfig, log ServiceLogger) (*Bus, error) {
	return wirepkg.Build(ctx, cfg, loggingpkg.NewWatermillAdapter(log))
}

// Sentinel errors of the frame transport layer, re-exported for callers that
// only import the root package.
var (
	ErrNotAdvertised           = transportpkg.ErrNotAdvertised
	ErrNotSubscribed           = transportpkg.ErrNotSubscribed
	ErrOwnedPublishUnsupported = transportpkg.ErrOwnedPublishUnsupported
	ErrShutdown                = transportpkg.ErrShutdown
)

// DefaultQueueDepth is the queue depth used when QoS.Depth is zero.
const DefaultQueueDepth = wirepkg.DefaultQueueDepth
