package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultAPIURL     = "http://127.0.0.1:7440"
	DefaultDBFileName = ".reportvault.db"
	DefaultLogLevel   = "info"

	DefaultMaxUploadBytes     int64 = 100 * 1024 * 1024
	DefaultMultipartMaxMemory int64 = 8 * 1024 * 1024
	DefaultSessionTTLHours          = 24

	configPathEnvKey = "REPORTVAULT_CONFIG"
	dbPathEnvKey     = "REPORTVAULT_DB_PATH"
	apiURLEnvKey     = "REPORTVAULT_API_URL"
	blobRootEnvKey   = "REPORTVAULT_BLOB_ROOT"

	defaultConfigFileName = ".reportvault.toml"
)

// SecurityConfig tunes credential and session policy.
type SecurityConfig struct {
	// DenylistPath optionally points at a YAML list of additional
	// compromised passwords merged into the built-in set.
	DenylistPath    string `toml:"denylist_path"`
	SessionTTLHours int    `toml:"session_ttl_hours"`
}

// UploadConfig tunes report upload handling.
type UploadConfig struct {
	MaxUploadBytes     int64 `toml:"max_upload_bytes"`
	MultipartMaxMemory int64 `toml:"multipart_max_memory"`
}

// Config defines runtime configuration for reportvault.
type Config struct {
	APIURL   string         `toml:"api_url"`
	DBPath   string         `toml:"db_path"`
	BlobRoot string         `toml:"blob_root"`
	LogLevel string         `toml:"log_level"`
	Security SecurityConfig `toml:"security"`
	Uploads  UploadConfig   `toml:"uploads"`
}

// Default returns default configuration values.
func Default() Config {
	return Config{
		APIURL:   DefaultAPIURL,
		LogLevel: DefaultLogLevel,
		Security: SecurityConfig{
			SessionTTLHours: DefaultSessionTTLHours,
		},
		Uploads: UploadConfig{
			MaxUploadBytes:     DefaultMaxUploadBytes,
			MultipartMaxMemory: DefaultMultipartMaxMemory,
		},
	}
}

// Load builds configuration from defaults, an optional TOML file, and
// environment overrides, in that order.
func Load() (*Config, error) {
	cfg := Default()

	path := strings.TrimSpace(os.Getenv(configPathEnvKey))
	explicit := path != ""
	if !explicit {
		if cwd, err := os.Getwd(); err == nil {
			path = filepath.Join(cwd, defaultConfigFileName)
		}
	}
	if path != "" {
		found, err := loadFileIfExists(path, &cfg)
		if err != nil {
			return nil, err
		}
		if explicit && !found {
			return nil, fmt.Errorf("config file %s not found", path)
		}
	}

	applyEnvOverrides(&cfg)
	cfg.applyDerivedDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadFileIfExists(path string, cfg *Config) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if info.IsDir() {
		return false, fmt.Errorf("config path %s is a directory", path)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return false, fmt.Errorf("parse config %s: %w", path, err)
	}
	return true, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(dbPathEnvKey)); v != "" {
		cfg.DBPath = v
	}
	if v := strings.TrimSpace(os.Getenv(apiURLEnvKey)); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv(blobRootEnvKey)); v != "" {
		cfg.BlobRoot = v
	}
}

func (c *Config) applyDerivedDefaults() {
	if c.DBPath == "" {
		if cwd, err := os.Getwd(); err == nil {
			c.DBPath = filepath.Join(cwd, DefaultDBFileName)
		}
	}
	if c.BlobRoot == "" && c.DBPath != "" {
		c.BlobRoot = filepath.Join(filepath.Dir(c.DBPath), ".reportvault", "blobs")
	}
	if c.Security.SessionTTLHours <= 0 {
		c.Security.SessionTTLHours = DefaultSessionTTLHours
	}
	if c.Uploads.MaxUploadBytes <= 0 {
		c.Uploads.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if c.Uploads.MultipartMaxMemory <= 0 {
		c.Uploads.MultipartMaxMemory = DefaultMultipartMaxMemory
	}
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.APIURL) == "" {
		return fmt.Errorf("api_url is required")
	}
	if c.Uploads.MultipartMaxMemory > c.Uploads.MaxUploadBytes {
		return fmt.Errorf("multipart_max_memory (%s) must not exceed max_upload_bytes (%s)",
			strconv.FormatInt(c.Uploads.MultipartMaxMemory, 10),
			strconv.FormatInt(c.Uploads.MaxUploadBytes, 10))
	}
	return nil
}
