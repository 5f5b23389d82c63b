package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified"; ApplyDefaults fills them in.
type Config struct {
	Addr      string `json:"addr" yaml:"addr" toml:"addr"`
	ModelsDir string `json:"models_dir" yaml:"models_dir" toml:"models_dir"`

	// Hardware
	TotalMemoryMB  int `json:"total_memory_mb" yaml:"total_memory_mb" toml:"total_memory_mb"`
	GPUIndex       int `json:"gpu_index" yaml:"gpu_index" toml:"gpu_index"`
	StatusCacheMS  int `json:"status_cache_ms" yaml:"status_cache_ms" toml:"status_cache_ms"`
	ProbeTimeoutMS int `json:"probe_timeout_ms" yaml:"probe_timeout_ms" toml:"probe_timeout_ms"`

	// Residency policy
	EvictConflicting bool           `json:"evict_conflicting" yaml:"evict_conflicting" toml:"evict_conflicting"`
	EvictTimeoutMS   int            `json:"evict_timeout_ms" yaml:"evict_timeout_ms" toml:"evict_timeout_ms"`
	ActiveModelTTLS  int            `json:"active_model_ttl_s" yaml:"active_model_ttl_s" toml:"active_model_ttl_s"`
	DefaultKeepAlive string         `json:"default_keep_alive" yaml:"default_keep_alive" toml:"default_keep_alive"`
	HeadroomFactor   float64        `json:"headroom_factor" yaml:"headroom_factor" toml:"headroom_factor"`
	Footprints       map[string]int `json:"footprints" yaml:"footprints" toml:"footprints"`

	// Providers
	ProviderTimeoutMS  int    `json:"provider_timeout_ms" yaml:"provider_timeout_ms" toml:"provider_timeout_ms"`
	OllamaURL          string `json:"ollama_url" yaml:"ollama_url" toml:"ollama_url"`
	LMStudioURL        string `json:"lmstudio_url" yaml:"lmstudio_url" toml:"lmstudio_url"`
	OrpheusURL         string `json:"orpheus_url" yaml:"orpheus_url" toml:"orpheus_url"`
	OrpheusLMStudioURL string `json:"orpheus_lmstudio_url" yaml:"orpheus_lmstudio_url" toml:"orpheus_lmstudio_url"`

	// HTTP and logging
	CORSOrigins  []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
	MaxBodyBytes int64    `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	LogLevel     string   `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat    string   `json:"log_format" yaml:"log_format" toml:"log_format"`
}

// Defaults
const (
	DefaultAddr           = ":8000"
	DefaultStatusCacheMS  = 1000
	DefaultProbeTimeoutMS = 1500
	DefaultEvictTimeoutMS = 5000
	DefaultProviderMS     = 1000
	DefaultKeepAlive      = "5m"
	DefaultHeadroomFactor = 1.2
	DefaultMaxBodyBytes   = 1 << 20
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "json"
)

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// ApplyDefaults returns a copy with zero values replaced by defaults.
// TotalMemoryMB, ActiveModelTTLS and ModelsDir stay zero when unset: zero
// means "detect", "never prune" and "no scan" respectively.
func (c Config) ApplyDefaults() Config {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.StatusCacheMS <= 0 {
		c.StatusCacheMS = DefaultStatusCacheMS
	}
	if c.ProbeTimeoutMS <= 0 {
		c.ProbeTimeoutMS = DefaultProbeTimeoutMS
	}
	if c.EvictTimeoutMS <= 0 {
		c.EvictTimeoutMS = DefaultEvictTimeoutMS
	}
	if c.ProviderTimeoutMS <= 0 {
		c.ProviderTimeoutMS = DefaultProviderMS
	}
	if c.DefaultKeepAlive == "" {
		c.DefaultKeepAlive = DefaultKeepAlive
	}
	if c.HeadroomFactor <= 0 {
		c.HeadroomFactor = DefaultHeadroomFactor
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}
	return c
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func (c Config) StatusCacheTTL() time.Duration  { return ms(c.StatusCacheMS) }
func (c Config) ProbeTimeout() time.Duration    { return ms(c.ProbeTimeoutMS) }
func (c Config) EvictTimeout() time.Duration    { return ms(c.EvictTimeoutMS) }
func (c Config) ProviderTimeout() time.Duration { return ms(c.ProviderTimeoutMS) }
func (c Config) ActiveModelTTL() time.Duration  { return time.Duration(c.ActiveModelTTLS) * time.Second }
