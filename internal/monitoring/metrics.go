// Package monitoring registers the Prometheus metrics of the ticket
// shop.  Counters are registered at import time via promauto and
// exposed on /metrics by the router.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ordersPlaced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Total number of successfully placed orders",
		},
	)

	ticketsSold = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tickets_sold_total",
			Help: "Total number of tickets sold across all orders",
		},
	)

	paymentsConfirmed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "payments_confirmed_total",
			Help: "Total number of orders marked as paid",
		},
	)

	ordersRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_rejected_total",
			Help: "Total number of rejected order attempts by reason",
		},
		[]string{"reason"},
	)
)

// OrderPlaced records a committed purchase of qty tickets.
func OrderPlaced(qty int) {
	ordersPlaced.Inc()
	ticketsSold.Add(float64(qty))
}

// PaymentConfirmed records an order transitioning to paid.
func PaymentConfirmed() {
	paymentsConfirmed.Inc()
}

// OrderRejected records a purchase attempt that failed validation or
// ran out of inventory.
func OrderRejected(reason string) {
	ordersRejected.WithLabelValues(reason).Inc()
}
