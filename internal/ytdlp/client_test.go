package ytdlp

import (
	"errors"
	"strings"
	"testing"
)

func TestParseProbe(t *testing.T) {
	data := []byte(`{
		"id": "abc123",
		"title": "Test Video",
		"uploader": "Test Channel",
		"thumbnail": "https://example.com/t.jpg",
		"duration_string": "3:21",
		"extractor": "youtube",
		"webpage_url": "https://example.com/watch?v=abc123",
		"formats": [
			{"format_id": "140", "ext": "m4a", "vcodec": "none", "acodec": "mp4a.40.2", "video_ext": "none", "audio_ext": "m4a", "abr": 129.6, "filesize": 3145728},
			{"format_id": "22", "ext": "mp4", "vcodec": "avc1.64001F", "acodec": "mp4a.40.2", "video_ext": "mp4", "audio_ext": "none", "height": 720, "format_note": "720p", "filesize_approx": 104857600},
			{"format_id": "sb0", "ext": "mhtml", "vcodec": "none", "acodec": "none", "video_ext": "none", "audio_ext": "none"}
		]
	}`)

	probe, err := parseProbe(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if probe.Title != "Test Video" {
		t.Errorf("expected title %q, got %q", "Test Video", probe.Title)
	}
	if probe.Extractor != "youtube" {
		t.Errorf("expected extractor %q, got %q", "youtube", probe.Extractor)
	}
	if len(probe.Formats) != 3 {
		t.Fatalf("expected 3 formats, got %d", len(probe.Formats))
	}

	audio := probe.Formats[0]
	if audio.HasVideo() {
		t.Error("audio-only format should not report a video track")
	}
	if !audio.HasAudio() {
		t.Error("audio-only format should report an audio track")
	}
	if audio.ABR != 129.6 {
		t.Errorf("expected abr 129.6, got %v", audio.ABR)
	}

	muxed := probe.Formats[1]
	if !muxed.HasVideo() {
		t.Error("muxed format should report a video track")
	}
	if muxed.FilesizeApprox != 104857600 {
		t.Errorf("expected filesize_approx 104857600, got %d", muxed.FilesizeApprox)
	}

	storyboard := probe.Formats[2]
	if storyboard.HasVideo() || storyboard.HasAudio() {
		t.Error("storyboard format should report neither track")
	}
}

func TestParseProbeInvalidJSON(t *testing.T) {
	if _, err := parseProbe([]byte("not json")); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestProbeFormatExt(t *testing.T) {
	probe := &Probe{
		Formats: []RawFormat{
			{FormatID: "140", Ext: "m4a"},
			{FormatID: "22", Ext: "mp4"},
		},
	}

	tests := []struct {
		name     string
		formatID string
		expected string
	}{
		{
			name:     "known format id",
			formatID: "140",
			expected: "m4a",
		},
		{
			name:     "unknown format id falls back",
			formatID: "999",
			expected: "mp4",
		},
		{
			name:     "empty format id falls back",
			formatID: "",
			expected: "mp4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := probe.FormatExt(tt.formatID, "mp4"); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestErrorLine(t *testing.T) {
	fallback := errors.New("exit status 1")

	tests := []struct {
		name     string
		stderr   string
		expected string
	}{
		{
			name:     "single error line",
			stderr:   "WARNING: something\nERROR: Unsupported URL: https://example.com\n",
			expected: "Unsupported URL: https://example.com",
		},
		{
			name:     "last error line wins",
			stderr:   "ERROR: first\nERROR: second\n",
			expected: "second",
		},
		{
			name:     "no error line falls back to process error",
			stderr:   "WARNING: only warnings here\n",
			expected: "exit status 1",
		},
		{
			name:     "empty stderr falls back",
			stderr:   "",
			expected: "exit status 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errorLine(tt.stderr, fallback); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestTailBuffer(t *testing.T) {
	tb := &tailBuffer{limit: 8}

	if _, err := tb.Write([]byte("abcd")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tb.String() != "abcd" {
		t.Errorf("expected %q, got %q", "abcd", tb.String())
	}

	if _, err := tb.Write([]byte("efghij")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tb.String() != "cdefghij" {
		t.Errorf("expected last 8 bytes %q, got %q", "cdefghij", tb.String())
	}
	if len(tb.String()) != 8 {
		t.Errorf("expected capped length 8, got %d", len(tb.String()))
	}
}

func TestTail(t *testing.T) {
	if got := tail("hello", 10); got != "hello" {
		t.Errorf("expected %q, got %q", "hello", got)
	}
	if got := tail(strings.Repeat("x", 20)+"end", 3); got != "end" {
		t.Errorf("expected %q, got %q", "end", got)
	}
}
