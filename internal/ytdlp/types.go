package ytdlp

// CodecNone is yt-dlp's sentinel for "this track does not exist".
const CodecNone = "none"

// RawFormat mirrors one entry of yt-dlp's formats array. Fields the probe
// did not report stay at their zero value; sentinel handling is done here
// so the rest of the pipeline never re-checks it.
type RawFormat struct {
	FormatID       string  `json:"format_id"`
	Ext            string  `json:"ext"`
	VCodec         string  `json:"vcodec"`
	ACodec         string  `json:"acodec"`
	VideoExt       string  `json:"video_ext"`
	AudioExt       string  `json:"audio_ext"`
	Height         int     `json:"height"`
	FormatNote     string  `json:"format_note"`
	ABR            float64 `json:"abr"`
	Filesize       int64   `json:"filesize"`
	FilesizeApprox int64   `json:"filesize_approx"`
}

// HasVideo returns true if the descriptor carries a usable video track.
func (f RawFormat) HasVideo() bool {
	return f.VCodec != "" && f.VCodec != CodecNone && f.VideoExt != CodecNone
}

// HasAudio returns true if the descriptor carries a usable audio track.
func (f RawFormat) HasAudio() bool {
	return f.ACodec != "" && f.ACodec != CodecNone && f.AudioExt != CodecNone
}

// Probe is the metadata yt-dlp resolves for one URL.
type Probe struct {
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	Uploader       string      `json:"uploader"`
	Thumbnail      string      `json:"thumbnail"`
	DurationString string      `json:"duration_string"`
	Extractor      string      `json:"extractor"`
	WebpageURL     string      `json:"webpage_url"`
	Formats        []RawFormat `json:"formats"`
}

// FormatExt returns the container extension of the rendition with the
// given id, or fallback when the id is no longer present in the probe.
// A download re-probes independently of the analyze call, so the target
// rendition may have disappeared in between.
func (p *Probe) FormatExt(formatID, fallback string) string {
	for _, f := range p.Formats {
		if f.FormatID == formatID {
			return f.Ext
		}
	}
	return fallback
}
