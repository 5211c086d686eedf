package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

// chdirTemp moves the test into a fresh directory so initialize() reads
// only what the test writes.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(prev)
	})
	return dir
}

func TestInitialize(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, dir string)
		cleanup func()
		wantErr bool
		check   func(t *testing.T)
	}{
		{
			name: "load from settings.yaml",
			setup: func(t *testing.T, dir string) {
				content := `
server:
  host: "127.0.0.1"
  port: 9191
database:
  path: "./test.db"
`
				if err := os.MkdirAll(filepath.Join(dir, "config"), 0755); err != nil {
					t.Fatalf("MkdirAll failed: %v", err)
				}
				if err := os.WriteFile(filepath.Join(dir, "config", "settings.yaml"), []byte(content), 0644); err != nil {
					t.Fatalf("WriteFile failed: %v", err)
				}
			},
			wantErr: false,
			check: func(t *testing.T) {
				if GetInt("server.port") != 9191 {
					t.Errorf("Expected server.port to be 9191, got %d", GetInt("server.port"))
				}
				if GetString("database.path") != "./test.db" {
					t.Errorf("Expected database.path override, got %s", GetString("database.path"))
				}
			},
		},
		{
			name: "environment variable override",
			setup: func(t *testing.T, dir string) {
				os.Setenv("SCRIBE_SERVER_PORT", "9090")
			},
			cleanup: func() {
				os.Unsetenv("SCRIBE_SERVER_PORT")
			},
			wantErr: false,
			check: func(t *testing.T) {
				if GetInt("server.port") != 9090 {
					t.Errorf("Expected server.port to be overridden to 9090, got %d", GetInt("server.port"))
				}
			},
		},
		{
			name:    "missing config file with defaults",
			setup:   func(t *testing.T, dir string) {},
			wantErr: false,
			check: func(t *testing.T) {
				if GetInt("server.port") != 8080 {
					t.Errorf("Expected default server.port to be 8080, got %d", GetInt("server.port"))
				}
				if GetString("whisper.model") != "base" {
					t.Errorf("Expected default whisper.model to be base, got %s", GetString("whisper.model"))
				}
				if GetInt("retention.keep_versions") != 10 {
					t.Errorf("Expected default retention.keep_versions to be 10, got %d", GetInt("retention.keep_versions"))
				}
			},
		},
		{
			name: "invalid whisper device rejected",
			setup: func(t *testing.T, dir string) {
				os.Setenv("SCRIBE_WHISPER_DEVICE", "tpu")
			},
			cleanup: func() {
				os.Unsetenv("SCRIBE_WHISPER_DEVICE")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			dir := chdirTemp(t)
			tt.setup(t, dir)
			if tt.cleanup != nil {
				defer tt.cleanup()
			}
			defer viper.Reset()

			err := initialize()
			if (err != nil) != tt.wantErr {
				t.Errorf("initialize() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.check != nil && err == nil {
				tt.check(t)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: &Config{
				Server: ServerConfig{
					Host: "localhost",
					Port: 8080,
				},
				Database: DatabaseConfig{
					Path: "./data/scribe.db",
				},
			},
			wantErr: false,
		},
		{
			name: "invalid port",
			config: &Config{
				Server: ServerConfig{
					Host: "localhost",
					Port: 0,
				},
			},
			wantErr: true,
		},
		{
			name: "empty database path is allowed",
			config: &Config{
				Server: ServerConfig{
					Host: "localhost",
					Port: 8080,
				},
				Database: DatabaseConfig{
					Path: "",
				},
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.config.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateAutoCorrects(t *testing.T) {
	cfg := &Config{
		Server:     ServerConfig{Host: "localhost", Port: 8080},
		Processing: ProcessingConfig{Workers: -1, MaxQueueSize: 0},
		Retention:  RetentionConfig{KeepVersions: 0},
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if cfg.Processing.Workers != 2 {
		t.Errorf("Workers = %d, want auto-corrected 2", cfg.Processing.Workers)
	}
	if cfg.Processing.MaxQueueSize != 100 {
		t.Errorf("MaxQueueSize = %d, want auto-corrected 100", cfg.Processing.MaxQueueSize)
	}
	if cfg.Retention.KeepVersions != 1 {
		t.Errorf("KeepVersions = %d, want auto-corrected 1", cfg.Retention.KeepVersions)
	}
}
