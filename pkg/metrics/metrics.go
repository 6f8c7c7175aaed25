// Package metrics exports form lifecycle counters and submit latency to
// Prometheus through form.Hooks.
package metrics

import (
	"context"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-formkit/pkg/form"
)

const defaultNamespace = "formkit"

// Collector records form events. It implements prometheus.Collector so it can
// be registered on any registry.
type Collector struct {
	events         *prometheus.CounterVec
	submits        *prometheus.CounterVec
	submitDuration *prometheus.HistogramVec
}

var _ prometheus.Collector = (*Collector)(nil)

// New builds a Collector whose metric names use namespace, or "formkit" when
// namespace is blank.
func New(namespace string) *Collector {
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		namespace = defaultNamespace
	}
	return &Collector{
		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "form_events_total",
				Help:      "Form lifecycle events by kind.",
			},
			[]string{"form", "event"},
		),
		submits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "form_submits_total",
				Help:      "Form submits by outcome.",
			},
			[]string{"form", "outcome"},
		),
		submitDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "form_submit_duration_seconds",
				Help:      "Time spent validating and handling a submit.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"form"},
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.events.Describe(ch)
	c.submits.Describe(ch)
	c.submitDuration.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.events.Collect(ch)
	c.submits.Collect(ch)
	c.submitDuration.Collect(ch)
}

// Hooks returns form hooks that feed the collector. Pass them with
// form.WithHooks; they merge with any other hooks on the form.
func (c *Collector) Hooks() form.Hooks {
	count := func(kind string) func(context.Context, *form.Event) {
		return func(_ context.Context, e *form.Event) {
			c.events.WithLabelValues(e.FormID, kind).Inc()
		}
	}
	return form.Hooks{
		OnMount:  count("mount"),
		OnRender: count("render"),
		OnChange: count("change"),
		OnBlur:   count("blur"),
		OnReset:  count("reset"),
		OnSubmit: func(_ context.Context, e *form.Event) {
			c.events.WithLabelValues(e.FormID, "submit").Inc()
			c.submits.WithLabelValues(e.FormID, e.Outcome).Inc()
			c.submitDuration.WithLabelValues(e.FormID).Observe(e.Duration.Seconds())
		},
		OnUnmount: count("unmount"),
	}
}
