package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/idilsaglam/fetchlist/internal/fetch"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvURL, EnvTheme, EnvLog, EnvColor} {
		k := k
		if v, ok := os.LookupEnv(k); ok {
			os.Unsetenv(k)
			t.Cleanup(func() { os.Setenv(k, v) })
		} else {
			t.Cleanup(func() { os.Unsetenv(k) })
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	c, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if c.Endpoint != fetch.DefaultEndpoint || c.Theme != "classic" || c.NoColor || c.LogFile != "" {
		t.Fatalf("config = %+v", c)
	}
}

func TestLoadEnvFileAndPrecedence(t *testing.T) {
	clearEnv(t)
	p := filepath.Join(t.TempDir(), ".env")
	body := "FETCHLIST_URL=http://localhost:8080/hiring.json\nFETCHLIST_THEME=neon\n"
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvTheme, "mono")

	c, err := Load(p)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if c.Endpoint != "http://localhost:8080/hiring.json" {
		t.Fatalf("endpoint = %q", c.Endpoint)
	}
	if c.Theme != "mono" {
		t.Fatalf("theme = %q, want environment to win over .env", c.Theme)
	}
}

func TestNoColor(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvColor, "")
	c, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if !c.NoColor {
		t.Fatal("NO_COLOR set but NoColor = false")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		url string
		ok  bool
	}{
		{fetch.DefaultEndpoint, true},
		{"http://127.0.0.1:8080/hiring.json", true},
		{"ftp://example.com/list", false},
		{"/hiring.json", false},
		{"http://", false},
		{"://bad", false},
	}
	for _, tt := range tests {
		err := Config{Endpoint: tt.url}.Validate()
		if (err == nil) != tt.ok {
			t.Errorf("Validate(%q) err = %v, want ok=%v", tt.url, err, tt.ok)
		}
	}
}
