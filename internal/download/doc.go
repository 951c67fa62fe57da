package download

// Package download implements the on-demand transfer path: re-resolving
// metadata for the requested URL, deriving the attachment filename, and
// opening the incremental rendition byte stream from the extraction engine.
