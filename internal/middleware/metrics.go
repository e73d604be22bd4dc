package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "siap_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// VerifikasiDecisions counts verification outcomes by terminal status.
	VerifikasiDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "siap_verifikasi_decisions_total",
		Help: "Total number of request verifications by resulting status",
	}, []string{"status"})

	// StokKonflik counts stock decrements rejected because stock would go negative.
	StokKonflik = promauto.NewCounter(prometheus.CounterOpts{
		Name: "siap_stok_conflict_total",
		Help: "Total number of verifications rejected due to insufficient stock",
	})
)

// InitMetrics creates the fiberprometheus middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware wraps the fiberprometheus middleware as a fiber handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
