package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		name string
		xdg  string
		want string
	}{
		{"home fallback", "", filepath.Join(home, ".cache", appName)},
		{"xdg", "/tmp/xdg-cache", filepath.Join("/tmp/xdg-cache", appName)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CACHE_HOME", tt.xdg)
			dir, err := cacheDir()
			if err != nil {
				t.Fatalf("cacheDir() error: %v", err)
			}
			if dir != tt.want {
				t.Errorf("cacheDir() = %q, want %q", dir, tt.want)
			}
		})
	}
}

func TestLocalCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
	buf := captureStdout(t)

	tests := []struct {
		name     string
		config   string
		want     string
		wantWarn bool
	}{
		{"default", "", filepath.Join("/tmp/xdg-cache", appName), false},
		{"configured dir", "[cache]\ndir = \"/srv/voyager-cache\"\n", "/srv/voyager-cache", false},
		{"redis backend", "[cache]\nbackend = \"redis\"\n[cache.redis]\naddr = \"localhost:6379\"\n", filepath.Join("/tmp/xdg-cache", appName), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			path := filepath.Join(t.TempDir(), "voyager.toml")
			if err := os.WriteFile(path, []byte(tt.config), 0o644); err != nil {
				t.Fatal(err)
			}
			c := &CLI{ConfigPath: path}

			dir, err := c.localCacheDir()
			if err != nil {
				t.Fatalf("localCacheDir() error: %v", err)
			}
			if dir != tt.want {
				t.Errorf("localCacheDir() = %q, want %q", dir, tt.want)
			}
			if got := strings.Contains(buf.String(), "redis"); got != tt.wantWarn {
				t.Errorf("redis warning = %v, want %v (%q)", got, tt.wantWarn, buf.String())
			}
		})
	}
}
