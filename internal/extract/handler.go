package extract

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vralchenko/ai-jurist/internal/llm"
	"github.com/vralchenko/ai-jurist/internal/prompt"
	"github.com/vralchenko/ai-jurist/internal/shared/server/respond"
	"github.com/vralchenko/ai-jurist/internal/shared/telemetry"
)

const maxUploadBytes = 10 << 20

// Handler serves document-to-text extraction.
type Handler struct {
	LLM   llm.Client
	Model string
}

// NewHandler constructs a Handler. LLM may be nil; cleanup is then skipped.
func NewHandler(client llm.Client, model string) *Handler {
	return &Handler{LLM: client, Model: model}
}

// RegisterRoutes attaches extraction routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/extract", h.extractDocument)
}

// extractDocument accepts a multipart file and responds with its plain text.
// Extraction failures yield empty text rather than an error: the upstream
// contract is that nothing throws past this boundary.
func (h *Handler) extractDocument(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	if fileHeader.Size > maxUploadBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds the upload limit", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	text, err := TextFromBytes(c.Request.Context(), data, fileHeader.Header.Get("Content-Type"), fileHeader.Filename)
	if err != nil {
		telemetry.Warn("extract.failed", map[string]any{
			"file":  fileHeader.Filename,
			"error": err.Error(),
		})
		text = ""
	}

	if text != "" && c.PostForm("cleanup") == "true" {
		text = h.cleanup(c, text)
	}

	respond.OK(c, gin.H{"text": text})
}

// cleanup runs the spacing-restoration prompt over extracted text. Failures
// fall back to the raw extraction.
func (h *Handler) cleanup(c *gin.Context, text string) string {
	if h.LLM == nil {
		return text
	}
	result, err := h.LLM.Complete(c.Request.Context(), llm.Request{
		Model:       h.Model,
		System:      prompt.CleanupSystem(),
		User:        text,
		Temperature: 0,
	})
	if err != nil {
		telemetry.Warn("extract.cleanup_failed", map[string]any{"error": err.Error()})
		return text
	}
	if cleaned := strings.TrimSpace(result.Content); cleaned != "" {
		return cleaned
	}
	return text
}
