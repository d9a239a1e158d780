package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/danmuck/irmanchester/internal/capture"
	"github.com/danmuck/irmanchester/internal/logging"
	"github.com/danmuck/irmanchester/internal/manchester"
)

// Config holds CLI defaults. Protocol timing constants are not configurable.
type Config struct {
	Log     LogConfig     `toml:"log"`
	Encode  EncodeConfig  `toml:"encode"`
	Decode  DecodeConfig  `toml:"decode"`
	Capture CaptureConfig `toml:"capture"`
}

type LogConfig struct {
	Level     string `toml:"level"`
	Timestamp bool   `toml:"timestamp"`
	NoColor   bool   `toml:"no_color"`
	JSON      bool   `toml:"json"`
	Backend   string `toml:"backend"`
}

type EncodeConfig struct {
	Protocol string `toml:"protocol"`
	Bits     int    `toml:"bits"`
	Repeat   uint   `toml:"repeat"`
}

type DecodeConfig struct {
	Protocol string `toml:"protocol"`
	Bits     int    `toml:"bits"`
	Offset   int    `toml:"offset"`
	Strict   bool   `toml:"strict"`
	Scan     bool   `toml:"scan"`
}

type CaptureConfig struct {
	Format   string `toml:"format"`
	MaxBytes int    `toml:"max_bytes"`
}

func Default() Config {
	return Config{
		Log: LogConfig{
			Level:     "info",
			Timestamp: true,
			Backend:   logging.BackendZerolog,
		},
		Encode: EncodeConfig{
			Protocol: manchester.Name,
			Bits:     manchester.CanonicalBits,
		},
		Decode: DecodeConfig{
			Protocol: manchester.Name,
			Bits:     manchester.CanonicalBits,
		},
		Capture: CaptureConfig{
			Format:   "json",
			MaxBytes: 1 << 20,
		},
	}
}

type fileConfig struct {
	Log struct {
		Level     string `toml:"level"`
		Timestamp bool   `toml:"timestamp"`
		NoColor   bool   `toml:"no_color"`
		JSON      bool   `toml:"json"`
		Backend   string `toml:"backend"`
	} `toml:"log"`
	Encode struct {
		Protocol string `toml:"protocol"`
		Bits     int    `toml:"bits"`
		Repeat   int64  `toml:"repeat"`
	} `toml:"encode"`
	Decode struct {
		Protocol string `toml:"protocol"`
		Bits     int    `toml:"bits"`
		Offset   int    `toml:"offset"`
		Strict   bool   `toml:"strict"`
		Scan     bool   `toml:"scan"`
	} `toml:"decode"`
	Capture struct {
		Format   string `toml:"format"`
		MaxBytes int    `toml:"max_bytes"`
	} `toml:"capture"`
}

// Load reads path on top of Default. Only keys present in the file
// override defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config parse failed (%s): unknown key %q", path, undecoded[0].String())
	}

	if meta.IsDefined("log", "level") {
		cfg.Log.Level = strings.TrimSpace(raw.Log.Level)
	}
	if meta.IsDefined("log", "timestamp") {
		cfg.Log.Timestamp = raw.Log.Timestamp
	}
	if meta.IsDefined("log", "no_color") {
		cfg.Log.NoColor = raw.Log.NoColor
	}
	if meta.IsDefined("log", "json") {
		cfg.Log.JSON = raw.Log.JSON
	}
	if meta.IsDefined("log", "backend") {
		cfg.Log.Backend = strings.ToLower(strings.TrimSpace(raw.Log.Backend))
	}

	if meta.IsDefined("encode", "protocol") {
		cfg.Encode.Protocol = strings.TrimSpace(raw.Encode.Protocol)
	}
	if meta.IsDefined("encode", "bits") {
		cfg.Encode.Bits = raw.Encode.Bits
	}
	if meta.IsDefined("encode", "repeat") {
		if raw.Encode.Repeat < 0 {
			return Config{}, fmt.Errorf("encode.repeat must not be negative")
		}
		cfg.Encode.Repeat = uint(raw.Encode.Repeat)
	}

	if meta.IsDefined("decode", "protocol") {
		cfg.Decode.Protocol = strings.TrimSpace(raw.Decode.Protocol)
	}
	if meta.IsDefined("decode", "bits") {
		cfg.Decode.Bits = raw.Decode.Bits
	}
	if meta.IsDefined("decode", "offset") {
		cfg.Decode.Offset = raw.Decode.Offset
	}
	if meta.IsDefined("decode", "strict") {
		cfg.Decode.Strict = raw.Decode.Strict
	}
	if meta.IsDefined("decode", "scan") {
		cfg.Decode.Scan = raw.Decode.Scan
	}

	if meta.IsDefined("capture", "format") {
		cfg.Capture.Format = strings.TrimSpace(raw.Capture.Format)
	}
	if meta.IsDefined("capture", "max_bytes") {
		cfg.Capture.MaxBytes = raw.Capture.MaxBytes
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	if _, ok := logging.ParseLevel(cfg.Log.Level); !ok {
		return fmt.Errorf("log config invalid level %q", cfg.Log.Level)
	}
	if !logging.ValidBackend(cfg.Log.Backend) {
		return fmt.Errorf("log config invalid backend %q", cfg.Log.Backend)
	}
	if strings.TrimSpace(cfg.Encode.Protocol) == "" {
		return fmt.Errorf("encode config missing protocol")
	}
	if cfg.Encode.Bits < 1 || cfg.Encode.Bits > manchester.MaxBits {
		return fmt.Errorf("encode config bits out of range: %d", cfg.Encode.Bits)
	}
	if strings.TrimSpace(cfg.Decode.Protocol) == "" {
		return fmt.Errorf("decode config missing protocol")
	}
	if cfg.Decode.Bits < 1 || cfg.Decode.Bits > manchester.MaxBits {
		return fmt.Errorf("decode config bits out of range: %d", cfg.Decode.Bits)
	}
	if cfg.Decode.Offset < 0 {
		return fmt.Errorf("decode config offset must not be negative")
	}
	if _, err := capture.ByName(cfg.Capture.Format); err != nil {
		return fmt.Errorf("capture config: %w", err)
	}
	if cfg.Capture.MaxBytes < 0 {
		return fmt.Errorf("capture config max_bytes must not be negative")
	}
	return nil
}

// LoggingConfig converts the log section for logging.Apply.
func (c Config) LoggingConfig() logging.Config {
	lvl, _ := logging.ParseLevel(c.Log.Level)
	return logging.Config{
		Level:     lvl,
		Timestamp: c.Log.Timestamp,
		NoColor:   c.Log.NoColor,
		Bypass:    c.Log.JSON,
		Backend:   c.Log.Backend,
	}
}
