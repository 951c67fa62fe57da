// Package handlers contains the echo HTTP handlers for the analyze,
// download, and health endpoints.
package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ytget/grab-server/internal/catalog"
	"github.com/ytget/grab-server/internal/download"
	"github.com/ytget/grab-server/internal/model"
)

// AnalyzeRequest is the analyze call payload.
type AnalyzeRequest struct {
	URL string `json:"url"`
}

// AnalyzeResponse is the envelope returned for both outcomes of an
// analyze call.
type AnalyzeResponse struct {
	Success   bool             `json:"success"`
	Platform  string           `json:"platform,omitempty"`
	VideoInfo *model.VideoInfo `json:"videoInfo,omitempty"`
	Error     string           `json:"error,omitempty"`
}

// AnalyzeHandler serves the catalog for a submitted URL.
type AnalyzeHandler struct {
	prober download.Prober
	logger *slog.Logger
}

// NewAnalyzeHandler creates the analyze handler.
func NewAnalyzeHandler(log *slog.Logger, prober download.Prober) *AnalyzeHandler {
	return &AnalyzeHandler{
		prober: prober,
		logger: log.With(slog.String("handler", "analyze")),
	}
}

// Register registers the analyze route.
func (h *AnalyzeHandler) Register(e *echo.Echo) {
	e.POST("/analyze", h.Analyze)
}

// Analyze resolves metadata for the submitted URL and returns the
// normalized, deduplicated format catalog.
func (h *AnalyzeHandler) Analyze(c echo.Context) error {
	var req AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, AnalyzeResponse{Error: "invalid request body"})
	}
	if strings.TrimSpace(req.URL) == "" {
		return c.JSON(http.StatusBadRequest, AnalyzeResponse{Error: "URL is required"})
	}

	probe, err := h.prober.Probe(c.Request().Context(), req.URL)
	if err != nil {
		h.logger.Error("analyze failed",
			slog.String("url", req.URL),
			slog.Any("error", err),
		)
		return c.JSON(http.StatusInternalServerError, AnalyzeResponse{Error: err.Error()})
	}

	info := catalog.Build(probe)
	h.logger.Info("analyzed",
		slog.String("url", req.URL),
		slog.String("platform", probe.Extractor),
		slog.Int("formats", len(info.Formats)),
	)

	return c.JSON(http.StatusOK, AnalyzeResponse{
		Success:   true,
		Platform:  probe.Extractor,
		VideoInfo: &info,
	})
}
