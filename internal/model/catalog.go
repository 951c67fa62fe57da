package model

// FormatOption is a single downloadable rendition as offered to the user.
// IDs are unique within one catalog.
type FormatOption struct {
	ID      string    `json:"id"`
	Quality string    `json:"quality"` // human readable, never empty (e.g. "720p", "128kbps")
	Format  string    `json:"format"`  // container extension (e.g. "mp4", "m4a")
	Size    string    `json:"size"`    // human readable size, "Unknown" when the probe has no size data
	Type    MediaType `json:"type"`
}

// VideoInfo is the analyzed catalog for one URL: display metadata plus the
// deduplicated format options ordered best quality first.
type VideoInfo struct {
	Title     string         `json:"title"`
	Thumbnail string         `json:"thumbnail"`
	Duration  string         `json:"duration,omitempty"`
	Author    string         `json:"author,omitempty"`
	Formats   []FormatOption `json:"formats"`
}
