package download

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// DefaultExtension is used when the requested rendition id is no longer
// present in the freshly resolved metadata.
const DefaultExtension = "mp4"

const transferIDPrefix = "transfer-"

// Transfer is one prepared download: the suggested attachment filename and
// the live byte stream. The caller owns Body and must close it.
type Transfer struct {
	ID       string
	Filename string
	Body     io.ReadCloser
}

// Service prepares download transfers against the extraction engine.
type Service struct {
	engine Engine
	logger *slog.Logger
}

// NewService creates a new download service.
func NewService(log *slog.Logger, engine Engine) *Service {
	return &Service{
		engine: engine,
		logger: log.With(slog.String("component", "download")),
	}
}

// Open resolves fresh metadata for the URL, derives the filename from the
// title and the rendition's container extension, and opens the byte
// stream. Metadata failures happen before any bytes are produced; stream
// faults after Open surface through reads on Body.
func (s *Service) Open(ctx context.Context, url, formatID string) (*Transfer, error) {
	probe, err := s.engine.Probe(ctx, url)
	if err != nil {
		return nil, err
	}

	ext := probe.FormatExt(formatID, DefaultExtension)
	filename := SanitizeTitle(probe.Title) + "." + ext

	body, err := s.engine.Stream(ctx, url, formatID)
	if err != nil {
		return nil, err
	}

	transfer := &Transfer{
		ID:       generateTransferID(),
		Filename: filename,
		Body:     body,
	}

	s.logger.Info("transfer opened",
		slog.String("transfer_id", transfer.ID),
		slog.String("format_id", formatID),
		slog.String("filename", filename),
	)

	return transfer, nil
}

// generateTransferID generates a unique transfer ID using UUID v7 for
// better uniqueness and time ordering.
func generateTransferID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(transferIDPrefix+"%d", time.Now().UnixNano())
	}
	return transferIDPrefix + id.String()
}
