// Package config resolves run settings from defaults, an optional YAML file
// and FORMRESTYLE_* environment variables, in that order.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig marks configuration problems (as opposed to runtime faults).
var ErrInvalidConfig = errors.New("invalid config")

const envPrefix = "FORMRESTYLE_"

// Config is the resolved configuration for one run.
type Config struct {
	Blob    Blob    `yaml:"blob"`
	Journal Journal `yaml:"journal"`
	Metrics Metrics `yaml:"metrics"`
	Log     Log     `yaml:"log"`
}

type Blob struct {
	Driver string `yaml:"driver"`
	FSRoot string `yaml:"fs_root"`
	S3     S3     `yaml:"s3"`
}

type S3 struct {
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	PathStyle bool   `yaml:"path_style"`
}

type Journal struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type Metrics struct {
	Textfile string `yaml:"textfile"`
}

type Log struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when nothing is set: patch the
// working directory, no journal, no metrics file, warnings only.
func Default() Config {
	return Config{
		Blob:    Blob{Driver: "fs", FSRoot: ".", S3: S3{Region: "us-east-1"}},
		Journal: Journal{Driver: "sqlite"},
		Log:     Log{Level: "warn"},
	}
}

// Load builds a Config. path may be empty; getenv is usually os.Getenv.
func Load(path string, getenv func(string) string) (Config, error) {
	cfg := Default()
	if path != "" {
		// #nosec G304 -- path is an operator-supplied config file.
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("%w: read %s: %v", ErrInvalidConfig, path, err)
		}
		if err := decodeYAML(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, path, err)
		}
	}
	if getenv != nil {
		if err := applyEnv(&cfg, getenv); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeYAML(b []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	strs := []struct {
		name string
		dst  *string
	}{
		{"BLOB_DRIVER", &cfg.Blob.Driver},
		{"BLOB_FS_ROOT", &cfg.Blob.FSRoot},
		{"BLOB_S3_BUCKET", &cfg.Blob.S3.Bucket},
		{"BLOB_S3_PREFIX", &cfg.Blob.S3.Prefix},
		{"BLOB_S3_REGION", &cfg.Blob.S3.Region},
		{"BLOB_S3_ENDPOINT", &cfg.Blob.S3.Endpoint},
		{"JOURNAL_DRIVER", &cfg.Journal.Driver},
		{"JOURNAL_DSN", &cfg.Journal.DSN},
		{"METRICS_TEXTFILE", &cfg.Metrics.Textfile},
		{"LOG_LEVEL", &cfg.Log.Level},
	}
	for _, s := range strs {
		if v := strings.TrimSpace(getenv(envPrefix + s.name)); v != "" {
			*s.dst = v
		}
	}
	if v := strings.TrimSpace(getenv(envPrefix + "BLOB_S3_PATH_STYLE")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %sBLOB_S3_PATH_STYLE=%q", ErrInvalidConfig, envPrefix, v)
		}
		cfg.Blob.S3.PathStyle = b
	}
	return nil
}

// Validate checks enumerations and driver-specific requirements.
func (c Config) Validate() error {
	switch c.Blob.Driver {
	case "fs":
	case "memory":
		return fmt.Errorf("%w: blob driver memory holds no forms and is for tests only", ErrInvalidConfig)
	case "s3":
		if c.Blob.S3.Bucket == "" {
			return fmt.Errorf("%w: blob.s3.bucket is required for the s3 driver", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown blob driver %q", ErrInvalidConfig, c.Blob.Driver)
	}
	switch c.Journal.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("%w: unknown journal driver %q", ErrInvalidConfig, c.Journal.Driver)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Log.Level)
	}
	return nil
}
