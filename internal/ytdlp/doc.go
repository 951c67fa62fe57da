package ytdlp

// Package ytdlp drives the external yt-dlp binary: metadata probing via
// `-J` JSON output decoded into typed descriptors, and incremental media
// streaming via `-o -` with the subprocess bound to the request context.
