// Package catalog turns yt-dlp's raw rendition descriptors into the clean,
// deduplicated, ordered format catalog served to the client.
package catalog

import (
	"fmt"
	"math"

	"github.com/ytget/grab-server/internal/model"
	"github.com/ytget/grab-server/internal/ytdlp"
)

// Label defaults
const (
	UnknownLabel = "Unknown"
	AudioLabel   = "Audio"
)

// Size formatting constants
const (
	BytesPerMegabyte = 1024 * 1024
	ApproxPrefix     = "~"
)

// Normalize turns one raw descriptor into a catalog entry. Descriptors
// carrying neither a video nor an audio track (manifest fragments,
// storyboards) produce no entry; that is the only no-result path.
func Normalize(f ytdlp.RawFormat) (model.FormatOption, bool) {
	hasVideo := f.HasVideo()
	hasAudio := f.HasAudio()

	if !hasVideo && !hasAudio {
		return model.FormatOption{}, false
	}

	// Muxed streams count as video; the audio track is implicit.
	mediaType := model.MediaTypeAudio
	if hasVideo {
		mediaType = model.MediaTypeVideo
	}

	return model.FormatOption{
		ID:      f.FormatID,
		Quality: qualityLabel(f, hasVideo),
		Format:  f.Ext,
		Size:    sizeLabel(f),
		Type:    mediaType,
	}, true
}

// qualityLabel derives the human readable quality string. Video prefers
// yt-dlp's own format note, then the height; audio uses the rounded
// average bitrate.
func qualityLabel(f ytdlp.RawFormat, hasVideo bool) string {
	if hasVideo {
		if f.FormatNote != "" {
			return f.FormatNote
		}
		if f.Height > 0 {
			return fmt.Sprintf("%dp", f.Height)
		}
		return UnknownLabel
	}

	if f.ABR > 0 {
		return fmt.Sprintf("%dkbps", int(math.Round(f.ABR)))
	}
	return AudioLabel
}

// sizeLabel formats the size estimate. Exact sizes come through plain,
// approximate ones get the ~ marker, absent data stays "Unknown".
func sizeLabel(f ytdlp.RawFormat) string {
	switch {
	case f.Filesize > 0:
		return formatMegabytes(f.Filesize)
	case f.FilesizeApprox > 0:
		return ApproxPrefix + formatMegabytes(f.FilesizeApprox)
	default:
		return UnknownLabel
	}
}

func formatMegabytes(bytes int64) string {
	return fmt.Sprintf("%.1f MB", float64(bytes)/BytesPerMegabyte)
}
