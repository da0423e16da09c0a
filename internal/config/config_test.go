package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestConfigGetString(t *testing.T) {
	v := viper.New()
	v.Set("name", "test")
	cfg := New(v)

	if got := cfg.GetString("name"); got != "test" {
		t.Errorf("GetString('name') = %q, want %q", got, "test")
	}
}

func TestConfigGetInt(t *testing.T) {
	v := viper.New()
	v.Set("port", 8080)
	cfg := New(v)

	if got := cfg.GetInt("port"); got != 8080 {
		t.Errorf("GetInt('port') = %d, want %d", got, 8080)
	}
}

func TestConfigGetBool(t *testing.T) {
	v := viper.New()
	v.Set("enabled", true)
	cfg := New(v)

	if got := cfg.GetBool("enabled"); !got {
		t.Error("GetBool('enabled') = false, want true")
	}
}

func TestConfigGetFloat64(t *testing.T) {
	v := viper.New()
	v.Set("radius", 12.5)
	cfg := New(v)

	if got := cfg.GetFloat64("radius"); got != 12.5 {
		t.Errorf("GetFloat64('radius') = %v, want %v", got, 12.5)
	}
}

func TestConfigGetDuration(t *testing.T) {
	v := viper.New()
	v.Set("timeout", "5s")
	cfg := New(v)

	want := 5 * time.Second
	if got := cfg.GetDuration("timeout"); got != want {
		t.Errorf("GetDuration('timeout') = %v, want %v", got, want)
	}
}

func TestConfigIsSet(t *testing.T) {
	v := viper.New()
	v.Set("exists", true)
	cfg := New(v)

	if !cfg.IsSet("exists") {
		t.Error("IsSet('exists') = false, want true")
	}
	if cfg.IsSet("missing") {
		t.Error("IsSet('missing') = true, want false")
	}
}

func TestConfigSub(t *testing.T) {
	v := viper.New()
	v.Set("catalog.driver", "sqlite")
	v.Set("catalog.db_path", "/tmp/deals.db")
	cfg := New(v)

	sub := cfg.Sub("catalog")
	if sub == nil {
		t.Fatal("Sub('catalog') = nil")
	}
	if got := sub.GetString("driver"); got != "sqlite" {
		t.Errorf("sub.GetString('driver') = %q, want %q", got, "sqlite")
	}
	if got := sub.GetString("db_path"); got != "/tmp/deals.db" {
		t.Errorf("sub.GetString('db_path') = %q, want %q", got, "/tmp/deals.db")
	}
}

func TestConfigSubMissing(t *testing.T) {
	v := viper.New()
	cfg := New(v)

	sub := cfg.Sub("nonexistent")
	if sub == nil {
		t.Fatal("Sub('nonexistent') should return empty Config, not nil")
	}
	// Should return zero values without panic.
	if got := sub.GetString("anything"); got != "" {
		t.Errorf("empty config GetString() = %q, want empty", got)
	}
}

func TestConfigUnmarshal(t *testing.T) {
	v := viper.New()
	v.Set("host", "localhost")
	v.Set("port", 9090)
	cfg := New(v)

	var target struct {
		Host string `mapstructure:"host"`
		Port int    `mapstructure:"port"`
	}
	if err := cfg.Unmarshal(&target); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if target.Host != "localhost" {
		t.Errorf("Host = %q, want %q", target.Host, "localhost")
	}
	if target.Port != 9090 {
		t.Errorf("Port = %d, want %d", target.Port, 9090)
	}
}

func TestNilViper(t *testing.T) {
	cfg := New(nil)
	// Should not panic and return zero values.
	if got := cfg.GetString("key"); got != "" {
		t.Errorf("nil viper GetString() = %q, want empty", got)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load('') error = %v", err)
	}

	if got := cfg.GetString("server.port"); got != "8080" {
		t.Errorf("server.port = %q, want %q", got, "8080")
	}
	if got := cfg.GetString("catalog.driver"); got != DriverEmbedded {
		t.Errorf("catalog.driver = %q, want %q", got, DriverEmbedded)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "server:\n  port: \"9999\"\ncatalog:\n  driver: sqlite\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error = %v", path, err)
	}

	if got := cfg.GetString("server.port"); got != "9999" {
		t.Errorf("server.port = %q, want %q", got, "9999")
	}
	if got := cfg.GetString("catalog.driver"); got != DriverSQLite {
		t.Errorf("catalog.driver = %q, want %q", got, DriverSQLite)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("Load with missing file should error")
	}
}
