package download

import (
	"context"
	"io"

	"github.com/ytget/grab-server/internal/ytdlp"
)

// Prober resolves rendition metadata for a URL.
type Prober interface {
	Probe(ctx context.Context, url string) (*ytdlp.Probe, error)
}

// Streamer opens an incremental byte stream for one rendition of a URL.
type Streamer interface {
	Stream(ctx context.Context, url, formatID string) (io.ReadCloser, error)
}

// Engine is the extraction-engine surface the download service depends on.
type Engine interface {
	Prober
	Streamer
}
