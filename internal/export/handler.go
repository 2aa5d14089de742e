package export

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vralchenko/ai-jurist/internal/shared/server/respond"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Handler serves analysis exports.
type Handler struct{}

// NewHandler constructs a Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// RegisterRoutes attaches export routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/export/docx", h.exportDocx)
}

type exportRequest struct {
	Text  string `json:"text"`
	Title string `json:"title"`
}

func (h *Handler) exportDocx(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid JSON body", nil)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "text is required", nil)
		return
	}

	data, err := Build(req.Title, req.Text)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to render document", nil)
		return
	}

	respond.Attachment(c, docxContentType, "Legal_Report.docx", data)
}
