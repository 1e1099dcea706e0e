package metrics

import "github.com/prometheus/client_golang/prometheus"

type Counter interface {
	Inc(labels ...string)
}

type Counters struct {
	LogsCreated Counter

	Requests Counter
}

type PrometheusCounter struct {
	counter *prometheus.CounterVec
}

func newCounterVec(name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: name,
		Help: help,
	}, labels)
}

func NewPrometheusCounter(reg prometheus.Registerer, name, help string, labels []string) *PrometheusCounter {
	c := &PrometheusCounter{counter: newCounterVec(name, help, labels)}
	reg.MustRegister(c.counter)
	return c
}

func (p *PrometheusCounter) Inc(labels ...string) {
	p.counter.WithLabelValues(labels...).Inc()
}

func newCounters(reg prometheus.Registerer) *Counters {
	return &Counters{
		LogsCreated: NewPrometheusCounter(
			reg,
			"logs_created_total",
			"Number of logs written to the store",
			[]string{"microservice"},
		),
		Requests: NewPrometheusCounter(
			reg,
			"requests_total",
			"Number of API operations by transport and outcome",
			[]string{"transport", "operation", "status"},
		),
	}
}

// New registers the counters on the default registry served at /metrics.
func New() *Counters {
	return newCounters(prometheus.DefaultRegisterer)
}

func NewTestCounters() *Counters {
	return newCounters(prometheus.NewRegistry())
}
