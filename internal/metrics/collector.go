package metrics

import "github.com/prometheus/client_golang/prometheus"

// Collector mirrors run progress into prometheus instruments. It owns a
// private registry so a run can be exported to a node_exporter textfile
// without the process-wide default collectors.
type Collector struct {
	registry    *prometheus.Registry
	records     *prometheus.CounterVec
	iterations  prometheus.Histogram
	generations prometheus.Gauge
	retries     prometheus.Gauge
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reconpipe",
			Name:      "records_total",
			Help:      "Execution records appended, by outcome kind.",
		}, []string{"kind"}),
		iterations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "reconpipe",
			Name:      "iteration_duration_seconds",
			Help:      "Wall time of one orchestrator iteration.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
		generations: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "reconpipe",
			Name:      "generation_count",
			Help:      "Follow-up task generations in the current run.",
		}),
		retries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "reconpipe",
			Name:      "global_retry_count",
			Help:      "Failures counted against the retry cap in the current run.",
		}),
	}
	c.registry.MustRegister(c.records, c.iterations, c.generations, c.retries)
	return c
}

func (c *Collector) Registry() *prometheus.Registry { return c.registry }

func (c *Collector) ObserveRecord(kind string) {
	c.records.WithLabelValues(kind).Inc()
}

func (c *Collector) ObserveIteration(it IterationMetrics) {
	c.iterations.Observe(it.End.Sub(it.Start).Seconds())
}

func (c *Collector) SetCounters(generations, retries int) {
	c.generations.Set(float64(generations))
	c.retries.Set(float64(retries))
}

// WriteTextfile dumps the registry in the text exposition format.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}

