package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ytget/grab-server/internal/download"
)

const relayBufferSize = 32 * 1024

// Opener prepares a download transfer for a URL and rendition id.
type Opener interface {
	Open(ctx context.Context, url, formatID string) (*download.Transfer, error)
}

// DownloadHandler relays a chosen rendition to the client as an
// attachment stream.
type DownloadHandler struct {
	service Opener
	logger  *slog.Logger
}

// NewDownloadHandler creates the download handler.
func NewDownloadHandler(log *slog.Logger, service Opener) *DownloadHandler {
	return &DownloadHandler{
		service: service,
		logger:  log.With(slog.String("handler", "download")),
	}
}

// Register registers the download route.
func (h *DownloadHandler) Register(e *echo.Echo) {
	e.GET("/download", h.Download)
}

// Download opens the rendition stream and relays it incrementally. The
// response is not committed until the stream yields its first chunk, so
// failures up to that point still produce an explicit server-error
// response. Once bytes are on the wire the connection is dropped on
// fault, leaving the truncation observable to the client.
func (h *DownloadHandler) Download(c echo.Context) error {
	url := c.QueryParam("url")
	formatID := c.QueryParam("formatId")
	if url == "" || formatID == "" {
		return c.String(http.StatusBadRequest, "url and formatId are required")
	}

	transfer, err := h.service.Open(c.Request().Context(), url, formatID)
	if err != nil {
		h.logger.Error("download setup failed",
			slog.String("url", url),
			slog.String("format_id", formatID),
			slog.Any("error", err),
		)
		return c.String(http.StatusInternalServerError, "Failed to start download: "+err.Error())
	}
	defer transfer.Body.Close()

	buf := make([]byte, relayBufferSize)
	n, rerr := readFirst(transfer.Body, buf)
	if n == 0 && rerr != nil && !errors.Is(rerr, io.EOF) {
		h.logger.Error("download stream failed before first byte",
			slog.String("transfer_id", transfer.ID),
			slog.Any("error", rerr),
		)
		return c.String(http.StatusInternalServerError, "Download failed: "+rerr.Error())
	}

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", transfer.Filename))
	resp.Header().Set(echo.HeaderContentType, echo.MIMEOctetStream)
	resp.WriteHeader(http.StatusOK)

	var written int64
	for {
		if n > 0 {
			if _, werr := resp.Write(buf[:n]); werr != nil {
				h.abort(transfer.ID, written, werr)
			}
			written += int64(n)
			resp.Flush()
		}
		if rerr != nil {
			if errors.Is(rerr, io.EOF) {
				h.logger.Info("transfer complete",
					slog.String("transfer_id", transfer.ID),
					slog.Int64("bytes", written),
				)
				return nil
			}
			h.abort(transfer.ID, written, rerr)
		}
		n, rerr = transfer.Body.Read(buf)
	}
}

// readFirst blocks until the stream yields data or fails. Read is allowed
// to return (0, nil), so keep polling until something definitive arrives.
func readFirst(r io.Reader, buf []byte) (int, error) {
	for {
		n, err := r.Read(buf)
		if n > 0 || err != nil {
			return n, err
		}
	}
}

// abort drops the connection without the terminating chunk so the client
// sees a read error instead of a clean EOF on a truncated file.
func (h *DownloadHandler) abort(transferID string, written int64, err error) {
	h.logger.Error("transfer aborted",
		slog.String("transfer_id", transferID),
		slog.Int64("bytes", written),
		slog.Any("error", err),
	)
	panic(http.ErrAbortHandler)
}
