// Package server exposes the analysis engine over HTTP.
//
// Routes:
//
//	POST /api/v1/price         value a call/put pair
//	POST /api/v1/curve         full analysis with both profit curves
//	GET  /api/v1/quote/:symbol latest close through the provider chain
//	GET  /health               liveness probe
//	GET  /metrics              Prometheus exposition
//
// Failure bodies are {"error": message}; the status code comes from the
// typed pricing and engine errors.
package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/contactkeval/option-pricer/internal/engine"
	"github.com/contactkeval/option-pricer/internal/logger"
	"github.com/contactkeval/option-pricer/internal/metrics"
	"github.com/contactkeval/option-pricer/internal/pricing"
)

// Handler serves the REST API on top of one analysis engine.
type Handler struct {
	eng *engine.Engine
}

func NewHandler(eng *engine.Engine) *Handler {
	return &Handler{eng: eng}
}

// Router builds a gin engine with all routes registered.
func (h *Handler) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	h.RegisterRoutes(router)
	return router
}

// RegisterRoutes binds the handler methods to router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := router.Group("/api/v1")
	{
		api.POST("/price", h.price)
		api.POST("/curve", h.curve)
		api.GET("/quote/:symbol", h.quote)
	}
}

// price values one call/put pair. The body is an engine request; the
// curve-only fields are accepted and ignored.
func (h *Handler) price(c *gin.Context) {
	var req engine.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	values, err := h.eng.Price(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, values)
}

// curve runs a full analysis and returns the values plus both profit curves.
func (h *Handler) curve(c *gin.Context) {
	var req engine.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.eng.Evaluate(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// quote resolves the latest close for the path symbol.
func (h *Handler) quote(c *gin.Context) {
	q, err := h.eng.ResolveSpot(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Errorf("event=request_failed path=%s status=%d err=%v", c.FullPath(), status, err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// statusFor maps typed errors onto HTTP status codes: degenerate model
// inputs are 422, malformed inputs and bad option types or range
// expressions are 400, provider failures are 502, anything unrecognized
// is 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, pricing.ErrDegenerateInput):
		return http.StatusUnprocessableEntity
	case errors.Is(err, pricing.ErrInvalidInput),
		errors.Is(err, pricing.ErrInvalidOptionType),
		errors.Is(err, engine.ErrInvalidRangeExpression):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrQuoteLookup):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
