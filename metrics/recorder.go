package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome classifies an authentication request.
type Outcome string

const (
	OutcomeSuccess        Outcome = "success"
	OutcomeInvalidRequest Outcome = "invalid_request"
	OutcomeFailure        Outcome = "failure"
	OutcomeError          Outcome = "error"
)

var outcomes = []Outcome{OutcomeSuccess, OutcomeInvalidRequest, OutcomeFailure, OutcomeError}

// Recorder records gateway events. A nil *Recorder discards everything.
type Recorder struct {
	authRequests  *prometheus.CounterVec
	encapsulation prometheus.Histogram
}

func newRecorder(namespace string, registerer prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		authRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_requests_total",
			Help:      "Authentication requests by outcome.",
		}, []string{"outcome"}),
		encapsulation: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "encapsulation_duration_seconds",
			Help:      "Time spent producing a key-encapsulation ciphertext.",
			Buckets:   []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1},
		}),
	}

	for _, c := range []prometheus.Collector{r.authRequests, r.encapsulation} {
		if err := registerer.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register collector: %w", err)
		}
	}
	for _, o := range outcomes {
		r.authRequests.WithLabelValues(string(o))
	}

	return r, nil
}

// ObserveAuth counts one authentication request.
func (r *Recorder) ObserveAuth(outcome Outcome) {
	if r == nil {
		return
	}
	r.authRequests.WithLabelValues(string(outcome)).Inc()
}

// ObserveEncapsulation records the duration of one encapsulation.
func (r *Recorder) ObserveEncapsulation(d time.Duration) {
	if r == nil {
		return
	}
	r.encapsulation.Observe(d.Seconds())
}
