package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/viper"
)

var (
	once        sync.Once
	initErr     error
	initialized atomic.Bool
)

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	once.Do(func() {
		initErr = initialize()
	})

	return initErr
}

// initialize loads defaults, env overrides, and the optional settings file
func initialize() error {
	// Set default values
	setDefaults()

	// Set up environment variable reading for overrides
	viper.SetEnvPrefix("SCRIBE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Load config from fixed location (cleaned for safety)
	configPath := filepath.Clean("./config/settings.yaml")
	viper.SetConfigFile(configPath)

	// Try to read the config file
	if err := viper.ReadInConfig(); err != nil {
		// If the config file doesn't exist, just use defaults and env vars
		if !os.IsNotExist(err) {
			return fmt.Errorf("error reading config file %s: %w", configPath, err)
		}
		// Config file doesn't exist, which is fine - we'll use defaults
	}

	// Validate the configuration
	if err := validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	initialized.Store(true)
	return nil
}

// IsInitialized reports whether configuration loading has completed successfully
func IsInitialized() bool {
	return initialized.Load()
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// Get returns a config value by key using Viper directly
func Get(key string) any {
	return viper.Get(key)
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// validate validates the configuration using Viper values
func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %d", port)
	}

	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		// Database is optional, so we don't return an error
		// but we log a warning
		fmt.Println("Warning: No database path configured")
	}

	device := viper.GetString("whisper.device")
	switch device {
	case "auto", "cpu", "cuda":
	default:
		return fmt.Errorf("invalid whisper device %q (want auto, cpu, or cuda)", device)
	}

	if err := validateSecrets(); err != nil {
		return err
	}

	// Auto-correct invalid worker count
	if viper.GetInt("processing.workers") <= 0 {
		viper.Set("processing.workers", 2)
	}

	// Auto-correct invalid queue size
	if viper.GetInt("processing.max_queue_size") <= 0 {
		viper.Set("processing.max_queue_size", 100)
	}

	// Retention must keep at least the current version
	if viper.GetInt("retention.keep_versions") < 1 {
		viper.Set("retention.keep_versions", 1)
	}

	return nil
}

// validateSecrets validates that secrets are not using placeholder values
func validateSecrets() error {
	env := viper.GetString("environment")
	isProduction := env == "production" || env == "prod"

	// List of placeholder values that shouldn't be used
	placeholders := []string{
		"YOUR_KEY_HERE",
		"YOUR_SECRET_HERE",
		"changeme",
		"CHANGEME",
		"",
	}

	if !viper.GetBool("auth.enabled") {
		return nil
	}

	jwtSecret := viper.GetString("auth.jwt_secret")
	for _, placeholder := range placeholders {
		if jwtSecret == placeholder {
			if isProduction {
				return fmt.Errorf("invalid JWT secret: cannot use placeholder values in production")
			}
			fmt.Println("Warning: JWT secret is using a placeholder value - this is insecure!")
			break
		}
	}

	return nil
}

// Validate validates a Config struct (for testing)
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Processing.Workers <= 0 {
		c.Processing.Workers = 2
	}

	if c.Processing.MaxQueueSize <= 0 {
		c.Processing.MaxQueueSize = 100
	}

	if c.Retention.KeepVersions < 1 {
		c.Retention.KeepVersions = 1
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Environment defaults
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)

	// Database defaults
	viper.SetDefault("database.path", "./data/scribe.db")
	viper.SetDefault("database.max_connections", 10)
	viper.SetDefault("database.max_idle_connections", 5)
	viper.SetDefault("database.connection_max_lifetime", 30*time.Minute)
	viper.SetDefault("database.busy_timeout", 5*time.Second)
	viper.SetDefault("database.enable_wal", true)
	viper.SetDefault("database.enable_foreign_keys", true)
	viper.SetDefault("database.log_queries", false)

	// Storage defaults
	viper.SetDefault("storage.upload_dir", "./data/uploads")
	viper.SetDefault("storage.export_dir", "./data/exports")
	viper.SetDefault("storage.temp_dir", "./tmp")
	viper.SetDefault("storage.max_file_size", int64(500*1024*1024))
	viper.SetDefault("storage.quota_bytes", int64(50)*1024*1024*1024)
	viper.SetDefault("storage.warning_threshold", 0.8)
	viper.SetDefault("storage.allowed_formats", []string{
		"wav", "mp3", "m4a", "mp4", "aac", "flac", "opus", "ogg", "wma", "webm",
	})

	// Whisper defaults
	viper.SetDefault("whisper.engine", "faster-whisper")
	viper.SetDefault("whisper.python_path", "python3")
	viper.SetDefault("whisper.model", "base")
	viper.SetDefault("whisper.model_dir", "./models")
	viper.SetDefault("whisper.manifest_path", "./config/models.yaml")
	viper.SetDefault("whisper.device", "auto")
	viper.SetDefault("whisper.compute_type", "float16")
	viper.SetDefault("whisper.beam_size", 5)
	viper.SetDefault("whisper.language", "")
	viper.SetDefault("whisper.timeout", 30*time.Minute)

	// Processing defaults
	viper.SetDefault("processing.workers", 2)
	viper.SetDefault("processing.max_queue_size", 100)
	viper.SetDefault("processing.poll_interval", 5*time.Second)
	viper.SetDefault("processing.job_timeout", 30*time.Minute)
	viper.SetDefault("processing.retry_attempts", 3)
	viper.SetDefault("processing.retry_delay", 5*time.Second)
	viper.SetDefault("processing.ffmpeg_path", "ffmpeg")
	viper.SetDefault("processing.ffprobe_path", "ffprobe")
	viper.SetDefault("processing.ffmpeg_timeout", 5*time.Minute)

	// Retention defaults
	viper.SetDefault("retention.enabled", true)
	viper.SetDefault("retention.sweep_interval", 1*time.Hour)
	viper.SetDefault("retention.keep_versions", 10)
	viper.SetDefault("retention.job_max_age_days", 30)

	// Export defaults
	viper.SetDefault("export.default_format", "srt")
	viper.SetDefault("export.include_timestamps", false)

	// Rate limiting defaults
	viper.SetDefault("rate_limiting.enabled", true)
	viper.SetDefault("rate_limiting.endpoints", map[string]int{
		"transcripts": 120,
		"jobs":        30,
		"export":      60,
		"default":     120,
	})

	// Security defaults
	viper.SetDefault("security.enable_cors", true)
	viper.SetDefault("security.cors_origins", []string{"*"})
	viper.SetDefault("security.cors_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	viper.SetDefault("security.cors_headers", []string{"Content-Type", "Authorization", "Range"})
	viper.SetDefault("security.enable_request_id", true)
	viper.SetDefault("security.enable_recovery", true)

	// Auth defaults
	viper.SetDefault("auth.enabled", false)
	viper.SetDefault("auth.jwt_secret", "")
	viper.SetDefault("auth.issuer", "scribe-api")

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")
	viper.SetDefault("logging.output", "stdout")
}
