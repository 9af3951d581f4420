package client

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects submission pipeline metrics. A nil *Metrics is valid and
// records nothing, so instrumentation stays optional.
type Metrics struct {
	BroadcastsTotal *prometheus.CounterVec
	OrdersTotal     *prometheus.CounterVec
	AccountCache    *prometheus.CounterVec
}

// NewMetrics creates a collector and registers it with the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{}

	m.BroadcastsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "perpdex",
			Subsystem: "client",
			Name:      "broadcasts_total",
			Help:      "Total number of transaction broadcasts",
		},
		[]string{"mode", "result"},
	)

	m.OrdersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "perpdex",
			Subsystem: "client",
			Name:      "orders_total",
			Help:      "Total number of orders composed and submitted",
		},
		[]string{"side", "type", "flags"},
	)

	m.AccountCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "perpdex",
			Subsystem: "client",
			Name:      "account_cache_total",
			Help:      "Account sequence cache lookups by outcome",
		},
		[]string{"outcome"},
	)

	reg.MustRegister(m.BroadcastsTotal, m.OrdersTotal, m.AccountCache)
	return m
}

func (m *Metrics) accountCacheHit() {
	if m == nil {
		return
	}
	m.AccountCache.WithLabelValues("hit").Inc()
}

func (m *Metrics) accountCacheMiss() {
	if m == nil {
		return
	}
	m.AccountCache.WithLabelValues("miss").Inc()
}

func (m *Metrics) broadcastDone(mode BroadcastMode, ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.BroadcastsTotal.WithLabelValues(mode.String(), result).Inc()
}

func (m *Metrics) orderSubmitted(side, orderType, flags string) {
	if m == nil {
		return
	}
	m.OrdersTotal.WithLabelValues(side, orderType, flags).Inc()
}
