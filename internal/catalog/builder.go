package catalog

import (
	"github.com/samber/lo"

	"github.com/ytget/grab-server/internal/model"
	"github.com/ytget/grab-server/internal/ytdlp"
)

// Build assembles the user-facing catalog from one probe result:
// normalize every raw format, drop the unusable ones, dedup by id with
// the first occurrence winning, and reverse the sequence. yt-dlp lists
// its best-guess renditions at the end of the raw array, so the reversed
// order surfaces best quality first.
func Build(probe *ytdlp.Probe) model.VideoInfo {
	options := make([]model.FormatOption, 0, len(probe.Formats))
	for _, f := range probe.Formats {
		// A descriptor without an id cannot participate in dedup
		// identity; drop it here rather than let it corrupt the keyspace.
		if f.FormatID == "" {
			continue
		}
		opt, ok := Normalize(f)
		if !ok {
			continue
		}
		options = append(options, opt)
	}

	options = lo.UniqBy(options, func(o model.FormatOption) string { return o.ID })
	options = lo.Reverse(options)

	return model.VideoInfo{
		Title:     probe.Title,
		Thumbnail: probe.Thumbnail,
		Duration:  probe.DurationString,
		Author:    probe.Uploader,
		Formats:   options,
	}
}
