// Package metrics exports control block lifecycle counts to Prometheus.
//
//	collector := metrics.NewCollector()
//	metrics.Register(prometheus.DefaultRegisterer, collector)
//	rc.SetObserver(collector)
//
// Objects allocated minus objects destroyed is the number of live objects;
// allocated minus freed is the number of live blocks. A steady growth of
// either usually means a leaked strong reference or a reference cycle.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dacapoday/rc"
)

const (
	namespace = "rc"
	kindLabel = "kind"
)

// Collector counts block events by kind. It implements both rc.Observer
// and prometheus.Collector.
type Collector struct {
	allocated     *prometheus.CounterVec
	destroyed     *prometheus.CounterVec
	destroyErrors *prometheus.CounterVec
	freed         *prometheus.CounterVec
}

var (
	_ rc.Observer          = (*Collector)(nil)
	_ prometheus.Collector = (*Collector)(nil)
)

// NewCollector returns a Collector with fresh counters.
func NewCollector() *Collector {
	return &Collector{
		allocated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "objects_allocated_total",
				Help:      "Total number of objects placed under shared ownership.",
			},
			[]string{kindLabel},
		),
		destroyed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "objects_destroyed_total",
				Help:      "Total number of objects destroyed after their last strong reference.",
			},
			[]string{kindLabel},
		),
		destroyErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "destroy_errors_total",
				Help:      "Total number of destruction actions that returned an error.",
			},
			[]string{kindLabel},
		),
		freed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "blocks_freed_total",
				Help:      "Total number of control blocks freed after their last reference.",
			},
			[]string{kindLabel},
		),
	}
}

// Register allows to register the counters of c with a given prometheus registerer.
func Register(reg prometheus.Registerer, c *Collector) {
	reg.MustRegister(c)
}

func (c *Collector) Allocated(kind rc.Kind) {
	c.allocated.WithLabelValues(kind.String()).Inc()
}

func (c *Collector) Destroyed(kind rc.Kind, err error) {
	c.destroyed.WithLabelValues(kind.String()).Inc()
	if err != nil {
		c.destroyErrors.WithLabelValues(kind.String()).Inc()
	}
}

func (c *Collector) Freed(kind rc.Kind) {
	c.freed.WithLabelValues(kind.String()).Inc()
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.allocated.Describe(ch)
	c.destroyed.Describe(ch)
	c.destroyErrors.Describe(ch)
	c.freed.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.allocated.Collect(ch)
	c.destroyed.Collect(ch)
	c.destroyErrors.Collect(ch)
	c.freed.Collect(ch)
}
