package analyze

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vralchenko/ai-jurist/internal/clientinfo"
	"github.com/vralchenko/ai-jurist/internal/shared/metrics"
	"github.com/vralchenko/ai-jurist/internal/shared/server/middleware"
	"github.com/vralchenko/ai-jurist/internal/shared/server/respond"
	"github.com/vralchenko/ai-jurist/internal/shared/telemetry"
	"github.com/vralchenko/ai-jurist/internal/sse"
)

// Handler wires the analyze endpoint to the pipeline service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the analyze route to the router group. The group is
// expected to carry admission control.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze", h.analyze)
}

func (h *Handler) analyze(c *gin.Context) {
	query := strings.TrimSpace(c.PostForm("query"))
	if query == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "query is required", nil)
		return
	}

	language := strings.ToLower(strings.TrimSpace(c.PostForm("language")))
	if language != "uk" {
		language = "ru"
	}
	sessionID := strings.TrimSpace(c.PostForm("sessionId"))
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	c.Set("sessionId", sessionID)
	c.Set("language", language)

	req := Request{
		Query:     query,
		Documents: c.PostFormArray("documents"),
		Language:  language,
		SessionID: sessionID,
		ClientIP:  clientinfo.IPFromRequest(c.Request),
		UserAgent: c.Request.UserAgent(),
	}

	metrics.IncPipelineStarted()
	start := time.Now()

	out := sse.NewWriter(c.Writer)
	err := h.Svc.Run(c.Request.Context(), req, out)
	if err == nil {
		metrics.IncPipelineCompleted()
		metrics.ObservePipelineDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
		return
	}

	metrics.IncPipelineFailed()
	telemetry.Error("analyze.failed", map[string]any{
		"request_id": middleware.RequestIDFromContext(c),
		"session_id": sessionID,
		"error":      err.Error(),
	})

	if errors.Is(err, ErrClientGone) {
		// Nobody left to tell.
		return
	}
	if !out.Started() {
		respond.Error(c, http.StatusBadGateway, "upstream_error", "analysis failed", nil)
		return
	}
	// Bytes are already on the wire; all that remains is an in-band error.
	_ = out.Event(errorFrame{Error: "analysis failed"})
}
