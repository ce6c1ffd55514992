package common

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kpi-extractor.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFromFile_Defaults(t *testing.T) {
	config, err := LoadFromFile("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := NewDefaultConfig()
	if !reflect.DeepEqual(config, want) {
		t.Errorf("got %+v, want %+v", config, want)
	}
}

func TestLoadFromFile_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
[server]
host = "0.0.0.0"
port = 9000

[logging]
level = "debug"

[registry]
path = "/etc/kpi/mappings.yaml"
`)
	t.Setenv("KPI_SERVER_PORT", "9100")
	t.Setenv("KPI_LOG_OUTPUT", "stdout, file")
	t.Setenv("KPI_CSV_FALLBACK_CHARSET", "ISO-8859-1")

	config, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if config.Server.Host != "0.0.0.0" {
		t.Errorf("host: got %q, want %q", config.Server.Host, "0.0.0.0")
	}
	if config.Server.Port != 9100 {
		t.Errorf("port: got %d, want 9100 from the environment", config.Server.Port)
	}
	if config.Server.BodyLimitMB != 20 {
		t.Errorf("body limit: got %d, want default 20", config.Server.BodyLimitMB)
	}
	if config.Logging.Level != "debug" {
		t.Errorf("level: got %q, want debug", config.Logging.Level)
	}
	if want := []string{"stdout", "file"}; !reflect.DeepEqual(config.Logging.Output, want) {
		t.Errorf("output: got %v, want %v", config.Logging.Output, want)
	}
	if !config.Logging.HasFileOutput {
		t.Error("file output not detected")
	}
	if config.Registry.Path != "/etc/kpi/mappings.yaml" {
		t.Errorf("registry path: got %q", config.Registry.Path)
	}
	if config.CSV.FallbackCharset != "ISO-8859-1" {
		t.Errorf("charset: got %q", config.CSV.FallbackCharset)
	}
}

func TestLoadFromFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad toml", "[server\nport = 1"},
		{"bad level", "[logging]\nlevel = \"verbose\""},
		{"bad port", "[server]\nport = 70000"},
		{"bad output", "[logging]\noutput = [\"syslog\"]"},
		{"file output without path", "[logging]\noutput = [\"file\"]\nfile = \"\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadFromFile(writeConfig(t, tt.content)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}

	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("missing file: expected error, got nil")
	}
}

func TestInitLogger(t *testing.T) {
	config := NewDefaultConfig()
	config.Logging.Output = []string{"file"}
	config.Logging.File = filepath.Join(t.TempDir(), "logs", "test.log")
	if err := config.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger := InitLogger(config)
	if logger == nil {
		t.Fatal("got nil logger")
	}
	logger.Info().Msg("logger initialised")

	if _, err := os.Stat(filepath.Dir(config.Logging.File)); err != nil {
		t.Errorf("log directory not created: %v", err)
	}
}
