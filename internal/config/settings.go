// Package config provides the Viper-based runtime settings for the server
// process: defaults first, GRAB_-prefixed environment variables on top.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings keys
const (
	KeyListenAddr      = "listen_addr"
	KeyYtdlpPath       = "ytdlp_path"
	KeyProbeTimeout    = "probe_timeout"
	KeyShutdownTimeout = "shutdown_timeout"
)

// Default values
const (
	DefaultListenAddr      = ":3000"
	DefaultYtdlpPath       = "yt-dlp"
	DefaultProbeTimeout    = 60 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)

const envPrefix = "grab"

// EnvKeyReplacer normalizes configuration keys into environment variable
// naming conventions.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Settings holds the runtime configuration for the server process.
type Settings struct {
	ListenAddr      string
	YtdlpPath       string
	ProbeTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Load builds settings from defaults and the environment. A bare PORT
// variable (the convention of the platforms this service deploys to) wins
// over the default listen address but not over GRAB_LISTEN_ADDR.
func Load() *Settings {
	v := viper.New()
	v.SetDefault(KeyListenAddr, DefaultListenAddr)
	v.SetDefault(KeyYtdlpPath, DefaultYtdlpPath)
	v.SetDefault(KeyProbeTimeout, DefaultProbeTimeout)
	v.SetDefault(KeyShutdownTimeout, DefaultShutdownTimeout)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(EnvKeyReplacer)
	v.AutomaticEnv()
	// Bare PORT, without the prefix.
	_ = v.BindEnv("port", "PORT")

	s := &Settings{
		ListenAddr:      v.GetString(KeyListenAddr),
		YtdlpPath:       v.GetString(KeyYtdlpPath),
		ProbeTimeout:    v.GetDuration(KeyProbeTimeout),
		ShutdownTimeout: v.GetDuration(KeyShutdownTimeout),
	}

	if s.ListenAddr == DefaultListenAddr {
		if port := v.GetString("port"); port != "" {
			s.ListenAddr = ":" + port
		}
	}
	if s.ProbeTimeout <= 0 {
		s.ProbeTimeout = DefaultProbeTimeout
	}
	if s.ShutdownTimeout <= 0 {
		s.ShutdownTimeout = DefaultShutdownTimeout
	}

	return s
}
