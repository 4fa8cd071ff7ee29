package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wonwomen07/prompt-engineering/internal/apperr"
	"github.com/wonwomen07/prompt-engineering/internal/httpapi/response"
	"github.com/wonwomen07/prompt-engineering/internal/usage"
)

// DefaultUsageWindow is the window reported when ?since is absent.
const DefaultUsageWindow = 24 * time.Hour

// UsageReader reads the call ledger.
type UsageReader interface {
	Stats(ctx context.Context, since time.Time) (*usage.Stats, error)
	Breakdown(ctx context.Context, since time.Time) ([]usage.TechniqueBreakdown, error)
}

type UsageHandler struct {
	reader UsageReader
	now    func() time.Time
}

func NewUsageHandler(reader UsageReader) *UsageHandler {
	return &UsageHandler{reader: reader, now: time.Now}
}

type usageResponse struct {
	Stats      *usage.Stats               `json:"stats"`
	Techniques []usage.TechniqueBreakdown `json:"techniques"`
}

// Usage reports ledger totals for the window given by ?since, a Go duration
// such as "1h" or "168h".
func (h *UsageHandler) Usage(c *gin.Context) {
	window := DefaultUsageWindow
	if s := strings.TrimSpace(c.Query("since")); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil || d <= 0 {
			response.RespondAppError(c, apperr.Validation("since", "must be a positive duration such as 24h, got %q", s))
			return
		}
		window = d
	}
	ctx := c.Request.Context()
	since := h.now().Add(-window)

	stats, err := h.reader.Stats(ctx, since)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	breakdown, err := h.reader.Breakdown(ctx, since)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	if breakdown == nil {
		breakdown = []usage.TechniqueBreakdown{}
	}
	response.RespondOK(c, usageResponse{Stats: stats, Techniques: breakdown})
}
