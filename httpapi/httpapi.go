// Package httpapi exposes a visits.Service over HTTP.
//
//	POST /api/v1/visit/:page_id   record a visit
//	GET  /api/v1/visits/:page_id  read the visit count
//	GET  /health                  liveness
//	GET  /metrics                 Prometheus metrics, when a gatherer is set
//
// Both visit endpoints answer {"visits": n, "served_via": "redis"|"in_memory"}.
// Any failure is reported as 500 {"detail": "..."}.
package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/ryhazerus/visits"
)

// Counter is the part of visits.Service the handlers use.
type Counter interface {
	IncrementVisit(ctx context.Context, pageID string) (visits.Result, error)
	VisitCount(ctx context.Context, pageID string) (visits.Result, error)
}

// Compile-time interface check.
var _ Counter = (*visits.Service)(nil)

// Options configures the router.
type Options struct {
	Counter Counter
	Logger  logrus.FieldLogger

	// Gatherer backs /metrics. The route is omitted when nil.
	Gatherer prometheus.Gatherer

	// RateLimit throttles the visit endpoints per client IP. Nil disables it.
	RateLimit *RateLimiter

	// TrustedProxies lists the IPs or CIDRs whose X-Forwarded-For and
	// X-Real-IP headers are believed. When empty the client IP is always the
	// socket peer.
	TrustedProxies []string
}

// NewRouter builds the gin engine serving the visit API. It fails when a
// trusted proxy is not a valid IP or CIDR.
func NewRouter(opts Options) (*gin.Engine, error) {
	if opts.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		opts.Logger = l
	}

	r := gin.New()
	if err := r.SetTrustedProxies(opts.TrustedProxies); err != nil {
		return nil, fmt.Errorf("httpapi: trusted proxies: %w", err)
	}
	r.Use(gin.Recovery(), requestLogger(opts.Logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if opts.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	h := &handler{counter: opts.Counter, logger: opts.Logger}

	api := r.Group("/api/v1")
	if opts.RateLimit != nil {
		api.Use(opts.RateLimit.Middleware())
	}
	{
		api.POST("/visit/:page_id", h.recordVisit)
		api.GET("/visits/:page_id", h.getVisits)
	}

	return r, nil
}

type handler struct {
	counter Counter
	logger  logrus.FieldLogger
}

// recordVisit handles POST /api/v1/visit/:page_id.
func (h *handler) recordVisit(c *gin.Context) {
	res, err := h.counter.IncrementVisit(c.Request.Context(), c.Param("page_id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// getVisits handles GET /api/v1/visits/:page_id.
func (h *handler) getVisits(c *gin.Context) {
	res, err := h.counter.VisitCount(c.Request.Context(), c.Param("page_id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *handler) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
}
