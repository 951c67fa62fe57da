package model

// MediaType classifies a catalog entry by the tracks it carries.
type MediaType string

const (
	// MediaTypeVideo marks renditions with a video track. Muxed streams
	// (video plus audio) are presented as video, the audio track implicit.
	MediaTypeVideo MediaType = "video"

	// MediaTypeAudio marks audio-only renditions.
	MediaTypeAudio MediaType = "audio"
)

// String returns the string representation of MediaType.
func (mt MediaType) String() string {
	return string(mt)
}

// IsValid returns true if the value is one of the known media types.
func (mt MediaType) IsValid() bool {
	return mt == MediaTypeVideo || mt == MediaTypeAudio
}
