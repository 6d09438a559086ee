// internal/services/metrics.go
package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reviewOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplace_review_operations_total",
		Help: "Review mutations by operation and outcome.",
	}, []string{"operation", "outcome"})

	moderationDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplace_moderation_decisions_total",
		Help: "Admin moderation decisions on products and sellers.",
	}, []string{"resource", "decision"})

	productWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplace_product_writes_total",
		Help: "Product create, update and delete operations by actor role.",
	}, []string{"operation", "actor"})
)

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
