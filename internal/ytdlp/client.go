package ytdlp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// Binary and timeout defaults
const (
	DefaultBinary       = "yt-dlp"
	DefaultProbeTimeout = 60 * time.Second
)

// Stderr capture limit; yt-dlp can be chatty and only the tail matters
// for diagnostics.
const stderrTailLimit = 4096

// yt-dlp flags
const (
	FlagDumpJSON   = "-J"
	FlagNoPlaylist = "--no-playlist"
	FlagFormat     = "-f"
	FlagOutput     = "-o"
	FlagQuiet      = "--quiet"
	OutputStdout   = "-"
)

// ErrorLinePrefix marks user-facing failure lines in yt-dlp stderr.
const ErrorLinePrefix = "ERROR:"

// Client drives the yt-dlp binary for metadata probing and streaming.
type Client struct {
	binary  string
	timeout time.Duration
	logger  *slog.Logger
}

// NewClient creates a yt-dlp client. Empty binary and non-positive timeout
// fall back to the defaults.
func NewClient(log *slog.Logger, binary string, timeout time.Duration) *Client {
	if binary == "" {
		binary = DefaultBinary
	}
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	return &Client{
		binary:  binary,
		timeout: timeout,
		logger:  log.With(slog.String("component", "ytdlp")),
	}
}

// SetTimeout sets the timeout for probe operations.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.timeout = timeout
}

// Probe resolves metadata for a URL by running `yt-dlp -J --no-playlist`.
// The returned error carries yt-dlp's own failure message; full stderr is
// logged, never returned.
func (c *Client) Probe(ctx context.Context, url string) (*Probe, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.binary, FlagDumpJSON, FlagNoPlaylist, url)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		c.logger.Error("probe failed",
			slog.String("url", url),
			slog.String("stderr", tail(stderr.String(), stderrTailLimit)),
		)
		return nil, fmt.Errorf("resolve metadata: %s", errorLine(stderr.String(), err))
	}

	return parseProbe(output)
}

// Stream opens an incremental byte stream for one rendition by running
// `yt-dlp -f <formatID> -o - <url>`. Bytes are relayed as the process
// produces them; nothing is buffered beyond the pipe. Cancelling ctx or
// closing the returned reader kills the process.
func (c *Client) Stream(ctx context.Context, url, formatID string) (io.ReadCloser, error) {
	cmd := exec.CommandContext(ctx, c.binary,
		FlagFormat, formatID,
		FlagOutput, OutputStdout,
		FlagNoPlaylist,
		FlagQuiet,
		url,
	)

	stderr := &tailBuffer{limit: stderrTailLimit}
	cmd.Stderr = stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("open stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", c.binary, err)
	}

	c.logger.Info("stream started",
		slog.String("url", url),
		slog.String("format_id", formatID),
		slog.Int("pid", cmd.Process.Pid),
	)

	return &streamReader{
		rc:     stdout,
		cmd:    cmd,
		stderr: stderr,
		logger: c.logger,
	}, nil
}

// parseProbe decodes yt-dlp -J output.
func parseProbe(data []byte) (*Probe, error) {
	var probe Probe
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	return &probe, nil
}

// errorLine extracts yt-dlp's last ERROR: line from stderr, falling back
// to the process error when none is present.
func errorLine(stderr string, err error) string {
	lines := strings.Split(stderr, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if strings.HasPrefix(line, ErrorLinePrefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, ErrorLinePrefix))
		}
	}
	return err.Error()
}

// tail returns at most limit trailing bytes of s.
func tail(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[len(s)-limit:]
}

// streamReader relays the process stdout. EOF is only reported as clean
// when the process exited successfully; a failed exit surfaces as an error
// so the caller can abort the transfer instead of finishing it.
type streamReader struct {
	rc     io.ReadCloser
	cmd    *exec.Cmd
	stderr *tailBuffer
	logger *slog.Logger

	waitOnce sync.Once
	waitErr  error
}

func (r *streamReader) Read(p []byte) (int, error) {
	n, err := r.rc.Read(p)
	if err == nil {
		return n, nil
	}
	if errors.Is(err, io.EOF) {
		if werr := r.wait(); werr != nil {
			r.logger.Error("stream process failed", slog.String("stderr", r.stderr.String()))
			return n, fmt.Errorf("stream: %s", errorLine(r.stderr.String(), werr))
		}
		return n, io.EOF
	}
	return n, err
}

// Close terminates the underlying process and reaps it. Safe to call after
// a clean EOF.
func (r *streamReader) Close() error {
	_ = r.rc.Close()
	if r.cmd.Process != nil {
		_ = r.cmd.Process.Kill()
	}
	_ = r.wait()
	return nil
}

func (r *streamReader) wait() error {
	r.waitOnce.Do(func() {
		r.waitErr = r.cmd.Wait()
	})
	return r.waitErr
}

// tailBuffer is an io.Writer keeping only the most recent limit bytes.
type tailBuffer struct {
	mu    sync.Mutex
	buf   []byte
	limit int
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.buf = append(t.buf, p...)
	if len(t.buf) > t.limit {
		t.buf = t.buf[len(t.buf)-t.limit:]
	}
	return len(p), nil
}

func (t *tailBuffer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return string(t.buf)
}
