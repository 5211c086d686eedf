package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Environment  string           `mapstructure:"environment"`
	Server       ServerConfig     `mapstructure:"server"`
	Database     DatabaseConfig   `mapstructure:"database"`
	Storage      StorageConfig    `mapstructure:"storage"`
	Whisper      WhisperConfig    `mapstructure:"whisper"`
	Processing   ProcessingConfig `mapstructure:"processing"`
	Retention    RetentionConfig  `mapstructure:"retention"`
	Export       ExportConfig     `mapstructure:"export"`
	RateLimiting RateLimitConfig  `mapstructure:"rate_limiting"`
	Security     SecurityConfig   `mapstructure:"security"`
	Auth         AuthConfig       `mapstructure:"auth"`
	Logging      LoggingConfig    `mapstructure:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path                  string        `mapstructure:"path"`
	MaxConnections        int           `mapstructure:"max_connections"`
	MaxIdleConnections    int           `mapstructure:"max_idle_connections"`
	ConnectionMaxLifetime time.Duration `mapstructure:"connection_max_lifetime"`
	BusyTimeout           time.Duration `mapstructure:"busy_timeout"`
	EnableWAL             bool          `mapstructure:"enable_wal"`
	EnableForeignKeys     bool          `mapstructure:"enable_foreign_keys"`
	LogQueries            bool          `mapstructure:"log_queries"`
}

// StorageConfig contains media storage settings
type StorageConfig struct {
	UploadDir        string   `mapstructure:"upload_dir"`
	ExportDir        string   `mapstructure:"export_dir"`
	TempDir          string   `mapstructure:"temp_dir"`
	MaxFileSize      int64    `mapstructure:"max_file_size"`
	QuotaBytes       int64    `mapstructure:"quota_bytes"`
	WarningThreshold float64  `mapstructure:"warning_threshold"`
	AllowedFormats   []string `mapstructure:"allowed_formats"`
}

// WhisperConfig contains transcription engine settings
type WhisperConfig struct {
	Engine       string        `mapstructure:"engine"`
	PythonPath   string        `mapstructure:"python_path"`
	Model        string        `mapstructure:"model"`
	ModelDir     string        `mapstructure:"model_dir"`
	ManifestPath string        `mapstructure:"manifest_path"`
	Device       string        `mapstructure:"device"`
	ComputeType  string        `mapstructure:"compute_type"`
	BeamSize     int           `mapstructure:"beam_size"`
	Language     string        `mapstructure:"language"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// ProcessingConfig contains pipeline worker settings
type ProcessingConfig struct {
	Workers       int           `mapstructure:"workers"`
	MaxQueueSize  int           `mapstructure:"max_queue_size"`
	PollInterval  time.Duration `mapstructure:"poll_interval"`
	JobTimeout    time.Duration `mapstructure:"job_timeout"`
	RetryAttempts int           `mapstructure:"retry_attempts"`
	RetryDelay    time.Duration `mapstructure:"retry_delay"`
	FFmpegPath    string        `mapstructure:"ffmpeg_path"`
	FFprobePath   string        `mapstructure:"ffprobe_path"`
	FFmpegTimeout time.Duration `mapstructure:"ffmpeg_timeout"`
}

// RetentionConfig controls how long versions and finished jobs are kept
type RetentionConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
	KeepVersions  int           `mapstructure:"keep_versions"`
	JobMaxAgeDays int           `mapstructure:"job_max_age_days"`
}

// ExportConfig contains transcript export settings
type ExportConfig struct {
	DefaultFormat     string `mapstructure:"default_format"`
	IncludeTimestamps bool   `mapstructure:"include_timestamps"`
}

// RateLimitConfig contains rate limiting settings
type RateLimitConfig struct {
	Enabled   bool           `mapstructure:"enabled"`
	Endpoints map[string]int `mapstructure:"endpoints"`
}

// SecurityConfig contains security settings
type SecurityConfig struct {
	EnableCORS      bool     `mapstructure:"enable_cors"`
	CORSOrigins     []string `mapstructure:"cors_origins"`
	CORSMethods     []string `mapstructure:"cors_methods"`
	CORSHeaders     []string `mapstructure:"cors_headers"`
	EnableRequestID bool     `mapstructure:"enable_request_id"`
	EnableRecovery  bool     `mapstructure:"enable_recovery"`
}

// AuthConfig contains bearer token authentication settings
type AuthConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
