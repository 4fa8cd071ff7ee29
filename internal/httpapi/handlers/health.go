package handlers

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wonwomen07/prompt-engineering/internal/schema"
)

// Version is reported by the root endpoint. Overridden at link time.
var Version = "dev"

type HealthHandler struct {
	provider string
	model    string
	now      func() time.Time
}

func NewHealthHandler(provider, model string) *HealthHandler {
	return &HealthHandler{provider: provider, model: model, now: time.Now}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, schema.Health{
		Status:    "healthy",
		Provider:  h.provider,
		Model:     h.model,
		Timestamp: h.now().UTC(),
	})
}

// Root returns the banner handler listing the routes routes reports.
func (h *HealthHandler) Root(routes func() gin.RoutesInfo) gin.HandlerFunc {
	return func(c *gin.Context) {
		var endpoints []string
		if routes != nil {
			for _, ri := range routes() {
				endpoints = append(endpoints, ri.Method+" "+ri.Path)
			}
		}
		sort.Strings(endpoints)
		c.JSON(http.StatusOK, gin.H{
			"message":   "Prompt Engineering API",
			"version":   Version,
			"provider":  h.provider,
			"endpoints": endpoints,
		})
	}
}
