// Copyright 2026 The Wheel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

package wheel

import (
	"github.com/prometheus/client_golang/prometheus"
)

// prometheusRegisterer is the minimal surface WithMetrics needs; it is
// satisfied by *prometheus.Registry and prometheus.DefaultRegisterer,
// kept narrow so callers are never forced to import the full
// prometheus package just to call WithMetrics.
type prometheusRegisterer interface {
	MustRegister(...prometheus.Collector)
}

// metricsConfig bundles the optional Prometheus collectors a driver
// updates as it runs (spec.md §9's observability surface: live timer
// count, fired/cancelled counters, slab growth events). Instrumenting
// the driver loop this way mirrors the decorator pattern used
// elsewhere in the corpus to wrap a core operation with counters
// without touching its control flow.
type metricsConfig struct {
	liveTimers    prometheus.Gauge
	firedTotal    prometheus.Counter
	cancelledTotal prometheus.Counter
	slabGrowths   prometheus.Counter
	slabSize      prometheus.Gauge
}

func newMetricsConfig(reg prometheusRegisterer, namespace string) *metricsConfig {
	m := &metricsConfig{
		liveTimers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: NAME,
			Name:      "live_timers",
			Help:      "Number of timer entries currently pending in the wheel.",
		}),
		firedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: NAME,
			Name:      "fired_total",
			Help:      "Total number of timer entries that reached their deadline.",
		}),
		cancelledTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: NAME,
			Name:      "cancelled_total",
			Help:      "Total number of timer entries cancelled before firing.",
		}),
		slabGrowths: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: NAME,
			Name:      "slab_growths_total",
			Help:      "Total number of times the entry slab has grown.",
		}),
		slabSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: NAME,
			Name:      "slab_size",
			Help:      "Current capacity of the entry slab.",
		}),
	}
	reg.MustRegister(m.liveTimers, m.firedTotal, m.cancelledTotal, m.slabGrowths, m.slabSize)
	return m
}

func (m *metricsConfig) onRegister() {
	if m == nil {
		return
	}
	m.liveTimers.Inc()
}

func (m *metricsConfig) onFired() {
	if m == nil {
		return
	}
	m.liveTimers.Dec()
	m.firedTotal.Inc()
}

func (m *metricsConfig) onCancelled() {
	if m == nil {
		return
	}
	m.liveTimers.Dec()
	m.cancelledTotal.Inc()
}

func (m *metricsConfig) onSlabGrow(newSize int) {
	if m == nil {
		return
	}
	m.slabGrowths.Inc()
	m.slabSize.Set(float64(newSize))
}
