package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis errors by operation type.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "tinfoil_redis_errors_total",
	Help: "Total number of Redis errors by operation type",
}, []string{"operation"})

// TheoriesGenerated counts generator invocations by outcome.
var TheoriesGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "tinfoil_theories_generated_total",
	Help: "Total number of theory generation requests by outcome",
}, []string{"outcome"})

// TagsCreated counts tags lazily created by the reconciliation step.
var TagsCreated = promauto.NewCounter(prometheus.CounterOpts{
	Name: "tinfoil_tags_created_total",
	Help: "Total number of tags created by tag reconciliation",
})

// InitMetrics creates the Prometheus middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the HTTP metrics collection handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
