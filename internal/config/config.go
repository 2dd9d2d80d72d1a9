// Package config loads service settings from defaults, an optional YAML
// file and the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Engine    EngineConfig
	Worker    WorkerConfig
	Templates TemplatesConfig
}

type ServerConfig struct {
	Port              string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

// EngineConfig tunes the deviation metric.
type EngineConfig struct {
	TempoWeight  float64
	EnergyWeight float64
	TempoSpread  float64 // BPM per unit of tempo deviation
}

type WorkerConfig struct {
	Count     int
	QueueSize int
}

type TemplatesConfig struct {
	File string // extra templates merged after the built-ins
}

// Load reads the configuration. CONFIG_FILE names an explicit file;
// otherwise config.yaml is looked up in . and ./config and may be absent.
func Load() (*Config, error) {
	v := viper.New()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: server.port -> SERVER_PORT
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_header_timeout", "15s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("engine.tempo_weight", 0.5)
	v.SetDefault("engine.energy_weight", 0.5)
	v.SetDefault("engine.tempo_spread", 30.0)
	v.SetDefault("worker.count", 2)
	v.SetDefault("worker.queue_size", 100)
	v.SetDefault("templates.file", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:              v.GetString("server.port"),
			ReadHeaderTimeout: v.GetDuration("server.read_header_timeout"),
			ShutdownTimeout:   v.GetDuration("server.shutdown_timeout"),
		},
		Engine: EngineConfig{
			TempoWeight:  v.GetFloat64("engine.tempo_weight"),
			EnergyWeight: v.GetFloat64("engine.energy_weight"),
			TempoSpread:  v.GetFloat64("engine.tempo_spread"),
		},
		Worker: WorkerConfig{
			Count:     v.GetInt("worker.count"),
			QueueSize: v.GetInt("worker.queue_size"),
		},
		Templates: TemplatesConfig{
			File: v.GetString("templates.file"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Server.Port == "":
		return errors.New("server.port is empty")
	case c.Server.ReadHeaderTimeout <= 0:
		return errors.New("server.read_header_timeout must be positive")
	case c.Server.ShutdownTimeout <= 0:
		return errors.New("server.shutdown_timeout must be positive")
	case c.Engine.TempoWeight < 0 || c.Engine.EnergyWeight < 0:
		return errors.New("engine weights must not be negative")
	case c.Engine.TempoWeight+c.Engine.EnergyWeight <= 0:
		return errors.New("engine weights must not both be zero")
	case c.Engine.TempoSpread <= 0:
		return errors.New("engine.tempo_spread must be positive")
	case c.Worker.Count < 1:
		return errors.New("worker.count must be at least 1")
	case c.Worker.QueueSize < 1:
		return errors.New("worker.queue_size must be at least 1")
	}
	return nil
}
