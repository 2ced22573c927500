package config

import (
	"fmt"
	"os"
	"time"

	"github.com/yasi-python/cistats/pkg/stats"
	"gopkg.in/yaml.v3"
)

type ServiceCfg struct {
	HTTPListen  string `yaml:"http_listen"`
	MetricsPath string `yaml:"metrics_path"`
	HealthzPath string `yaml:"healthz_path"`
	LogLevel    string `yaml:"log_level"`
	DataDir     string `yaml:"data_dir"`
}

type IngestCfg struct {
	Dir             string `yaml:"dir"`
	IntervalSeconds int    `yaml:"interval_seconds"`
	MeanKind        string `yaml:"mean_kind"`
}

type DefaultsCfg struct {
	ConfidenceLevel float64 `yaml:"confidence_level"`
	Side            string  `yaml:"side"` // two|upper|lower
}

type Config struct {
	Service  ServiceCfg  `yaml:"service"`
	Ingest   IngestCfg   `yaml:"ingest"`
	Defaults DefaultsCfg `yaml:"defaults"`
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	applyDefaults(&c)
	return &c, nil
}

func applyDefaults(c *Config) {
	if c.Service.HTTPListen == "" {
		c.Service.HTTPListen = ":8080"
	}
	if c.Service.MetricsPath == "" {
		c.Service.MetricsPath = "/metrics"
	}
	if c.Service.HealthzPath == "" {
		c.Service.HealthzPath = "/healthz"
	}
	if c.Service.LogLevel == "" {
		c.Service.LogLevel = "info"
	}
	if c.Service.DataDir == "" {
		c.Service.DataDir = "data"
	}
	if c.Ingest.IntervalSeconds <= 0 {
		c.Ingest.IntervalSeconds = 60
	}
	if c.Ingest.MeanKind == "" {
		c.Ingest.MeanKind = string(stats.ArithmeticMean)
	}
	if c.Defaults.ConfidenceLevel == 0 {
		c.Defaults.ConfidenceLevel = 0.95
	}
	if c.Defaults.Side == "" {
		c.Defaults.Side = "two"
	}
}

func (c *Config) IngestInterval() time.Duration {
	return time.Duration(c.Ingest.IntervalSeconds) * time.Second
}

// Confidence builds the configured default confidence.
func (c *Config) Confidence() (stats.Confidence, error) {
	return ParseConfidence(c.Defaults.ConfidenceLevel, c.Defaults.Side)
}

// ParseConfidence maps a level and a side name ("two", "upper", "lower")
// onto a stats.Confidence.
func ParseConfidence(level float64, side string) (stats.Confidence, error) {
	switch side {
	case "", "two":
		return stats.TwoSided(level)
	case "upper":
		return stats.UpperOneSided(level)
	case "lower":
		return stats.LowerOneSided(level)
	}
	return stats.Confidence{}, fmt.Errorf("unknown side %q", side)
}
