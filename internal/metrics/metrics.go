// internal/metrics/metrics.go
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tamzrod/spll-reader/internal/sample"
)

const (
	Namespace = "spll"
	Subsystem = "reader"
)

// Metrics holds the stream collectors. It implements stream.Observer.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	bytesReceived  prometheus.Counter
	reads          prometheus.Counter
	samples        *prometheus.CounterVec // source, kind
	boundaries     prometheus.Counter
	framingErrors  prometheus.Counter
	lastSequenceID prometheus.Gauge
}

// New creates the collectors on a dedicated registry.
func New() (*Metrics, error) {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		bytesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: Subsystem,
			Name:      "bytes_received_total",
			Help:      "Bytes received from the debug server.",
		}),
		reads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: Subsystem,
			Name:      "reads_total",
			Help:      "Receives that returned data.",
		}),
		samples: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: Subsystem,
			Name:      "samples_total",
			Help:      "Decoded samples by PLL source and kind.",
		}, []string{"source", "kind"}),
		boundaries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: Subsystem,
			Name:      "boundary_markers_total",
			Help:      "Samples carrying the boundary marker.",
		}),
		framingErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: Subsystem,
			Name:      "framing_errors_total",
			Help:      "Streams that ended inside a record.",
		}),
		lastSequenceID: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: Subsystem,
			Name:      "last_sequence_id",
			Help:      "Sequence id of the last decoded sample.",
		}),
	}

	for _, c := range []prometheus.Collector{
		m.bytesReceived,
		m.reads,
		m.samples,
		m.boundaries,
		m.framingErrors,
		m.lastSequenceID,
	} {
		if err := m.registry.Register(c); err != nil {
			return nil, errors.Wrap(err, "register metrics")
		}
	}

	return m, nil
}

// Registry returns the registry the collectors live in.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveRead(n int) {
	if m == nil {
		return
	}
	m.reads.Inc()
	m.bytesReceived.Add(float64(n))
}

func (m *Metrics) ObserveSample(s sample.Sample) {
	if m == nil {
		return
	}
	m.samples.WithLabelValues(s.Source.String(), s.Kind.String()).Inc()
	if s.Boundary {
		m.boundaries.Inc()
	}
	m.lastSequenceID.Set(float64(s.Seq))
}

func (m *Metrics) ObserveFramingError() {
	if m == nil {
		return
	}
	m.framingErrors.Inc()
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	glog.Infof("metrics listening on %s", addr)

	select {
	case err := <-errCh:
		return errors.Wrapf(err, "metrics server %s", addr)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "metrics server shutdown")
	}
	return nil
}
