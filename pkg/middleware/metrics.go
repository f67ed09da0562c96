package middleware

import (
	"strconv"
	"time"

	"github.com/devfest-tools/modgate/pkg/infra/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type metricsMiddleware struct {
	logger *logrus.Logger
}

func NewMetricsMiddleware(logger *logrus.Logger) Middleware {
	return &metricsMiddleware{logger: logger}
}

func (m *metricsMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		elapsed := float64(time.Since(start).Milliseconds())
		path := c.Route().Path
		status := strconv.Itoa(c.Response().StatusCode())

		metrics.RequestTotal.WithLabelValues(c.Method(), path, status).Inc()
		metrics.RequestLatency.WithLabelValues(c.Method(), path).Observe(elapsed)

		return err
	}
}
