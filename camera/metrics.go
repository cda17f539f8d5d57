package camera

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts the traffic of synchronized camera subscribers. All methods
// are safe on a nil receiver, so instrumentation stays optional.
type Metrics struct {
	framesTotal       *prometheus.CounterVec
	calibrationsTotal *prometheus.CounterVec
	pairsTotal        *prometheus.CounterVec
	desyncTotal       *prometheus.CounterVec
}

// NewMetrics creates unregistered camera metrics. Call Register to attach
// them to a Prometheus registry.
func NewMetrics() *Metrics {
	return &Metrics{
		framesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "frameflow_camera_frames_received_total",
			Help: "Number of frames received on the image topic.",
		}, []string{"topic"}),
		calibrationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "frameflow_camera_calibrations_received_total",
			Help: "Number of calibration records received.",
		}, []string{"topic"}),
		pairsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "frameflow_camera_pairs_matched_total",
			Help: "Number of frame and calibration pairs delivered.",
		}, []string{"topic"}),
		desyncTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "frameflow_camera_desync_warnings_total",
			Help: "Number of desynchronization warnings emitted by the watchdog.",
		}, []string{"topic"}),
	}
}

// Register registers all collectors with reg, or with the default registerer
// when reg is nil.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	if m == nil {
		return nil
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range []prometheus.Collector{m.framesTotal, m.calibrationsTotal, m.pairsTotal, m.desyncTotal} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) observeFrame(topic string) {
	if m == nil {
		return
	}
	m.framesTotal.WithLabelValues(topic).Inc()
}

func (m *Metrics) observeCalibration(topic string) {
	if m == nil {
		return
	}
	m.calibrationsTotal.WithLabelValues(topic).Inc()
}

func (m *Metrics) observePair(topic string) {
	if m == nil {
		return
	}
	m.pairsTotal.WithLabelValues(topic).Inc()
}

func (m *Metrics) observeDesync(topic string) {
	if m == nil {
		return
	}
	m.desyncTotal.WithLabelValues(topic).Inc()
}
