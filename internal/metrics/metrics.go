// Package metrics собирает счетчики жизненного цикла сессий и заказов.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	SessionsActive   prometheus.Gauge
	SessionsStarted  prometheus.Counter
	SessionsExpired  prometheus.Counter
	EventsDispatched prometheus.Counter
	OrdersPlaced     prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "shopbot",
			Name:      "sessions_active",
			Help:      "Number of currently running session actors.",
		}),
		SessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shopbot",
			Name:      "sessions_started_total",
			Help:      "Total number of session actors started.",
		}),
		SessionsExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shopbot",
			Name:      "sessions_expired_total",
			Help:      "Total number of sessions terminated by idle timeout.",
		}),
		EventsDispatched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shopbot",
			Name:      "events_dispatched_total",
			Help:      "Total number of inbound events routed to session mailboxes.",
		}),
		OrdersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shopbot",
			Name:      "orders_placed_total",
			Help:      "Total number of successfully placed orders.",
		}),
	}
	reg.MustRegister(m.SessionsActive, m.SessionsStarted, m.SessionsExpired, m.EventsDispatched, m.OrdersPlaced)
	return m
}
