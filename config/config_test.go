package config

import (
	"os"
	"path/filepath"
	"testing"

	"ogkort/rasterize"
)

func TestLoadConfig(t *testing.T) {
	// Create temp config file
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "ogkort.yaml")

	configContent := `
site:
  base_url: "https://example.com"
  root: "site"
  content_dir: "site/content"
  sections: ["posts", "projects", "notes"]
  default_author: "Jane"

assets:
  avatar: "site/assets/avatar.png"
  stylesheet: "site/assets/og.css"

rasterizer:
  binary: "wkhtmltoimage"
  pre_touch: true

compressor:
  binary: "pngquant"
  quality: 90

build:
  jobs: 2

preview:
  host: "0.0.0.0"
  port: 9000

deploy:
  rsync_target: "user@host.com:/var/www/site/assets/og_images"
  rsync_opts: "-avz"

ntfy:
  enabled: true
  server: "https://ntfy.example.com"
  topic: "ogkort-builds"
`

	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to create test config: %v", err)
	}

	// Load config
	cfg, err := Load(configFile)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Validate fields
	if cfg.Site.BaseURL != "https://example.com" {
		t.Errorf("Expected base_url 'https://example.com', got '%s'", cfg.Site.BaseURL)
	}

	if cfg.Site.DefaultAuthor != "Jane" {
		t.Errorf("Expected default_author 'Jane', got '%s'", cfg.Site.DefaultAuthor)
	}

	if len(cfg.Site.Sections) != 3 {
		t.Errorf("Expected 3 sections, got %d", len(cfg.Site.Sections))
	}

	if cfg.Compressor.Quality != 90 {
		t.Errorf("Expected compressor quality 90, got %d", cfg.Compressor.Quality)
	}

	if cfg.Build.Jobs != 2 {
		t.Errorf("Expected 2 build jobs, got %d", cfg.Build.Jobs)
	}

	if cfg.Preview.Port != 9000 {
		t.Errorf("Expected preview port 9000, got %d", cfg.Preview.Port)
	}

	if !cfg.Rasterizer.PreTouchEnabled() {
		t.Error("Expected pre_touch to be enabled")
	}

	if !cfg.Ntfy.Enabled {
		t.Error("Expected ntfy to be enabled")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "ogkort.yaml")

	configContent := `
site:
  base_url: "https://example.com"
  root: "site"

assets:
  avatar: "avatar.png"
  stylesheet: "og.css"
`

	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to create test config: %v", err)
	}

	cfg, err := Load(configFile)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Site.ContentDir != filepath.Join("site", "content") {
		t.Errorf("Expected content_dir derived from root, got '%s'", cfg.Site.ContentDir)
	}

	if len(cfg.Site.Sections) != 2 || cfg.Site.Sections[0] != "posts" || cfg.Site.Sections[1] != "projects" {
		t.Errorf("Expected default sections [posts projects], got %v", cfg.Site.Sections)
	}

	if cfg.Rasterizer.Binary != rasterize.DefaultRasterizerBinary {
		t.Errorf("Expected default rasterizer binary, got '%s'", cfg.Rasterizer.Binary)
	}

	if cfg.Compressor.Binary != rasterize.DefaultCompressorBinary {
		t.Errorf("Expected default compressor binary, got '%s'", cfg.Compressor.Binary)
	}

	if cfg.Compressor.Quality != 95 {
		t.Errorf("Expected default quality 95, got %d", cfg.Compressor.Quality)
	}

	if cfg.Build.Jobs != 1 {
		t.Errorf("Expected default 1 job, got %d", cfg.Build.Jobs)
	}

	if cfg.Preview.Host != "127.0.0.1" || cfg.Preview.Port != 8421 {
		t.Errorf("Expected default preview address, got %s:%d", cfg.Preview.Host, cfg.Preview.Port)
	}

	if cfg.Ntfy.Server != "https://ntfy.sh" {
		t.Errorf("Expected default ntfy server, got '%s'", cfg.Ntfy.Server)
	}

	// Pre-touch defaults to on when the config does not mention it.
	if !cfg.Rasterizer.PreTouchEnabled() {
		t.Error("Expected pre_touch enabled by default")
	}
}

func TestPreTouchExplicitlyDisabled(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "ogkort.yaml")

	configContent := `
site:
  base_url: "https://example.com"
  root: "site"

assets:
  avatar: "avatar.png"
  stylesheet: "og.css"

rasterizer:
  pre_touch: false
`

	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to create test config: %v", err)
	}

	cfg, err := Load(configFile)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Rasterizer.PreTouchEnabled() {
		t.Error("Expected pre_touch disabled when set to false")
	}
}

func TestEnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "ogkort.yaml")

	configContent := `
site:
  base_url: "https://example.com"
  root: "site"

assets:
  avatar: "avatar.png"
  stylesheet: "og.css"

ntfy:
  enabled: true
  topic: "from-file"
`

	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to create test config: %v", err)
	}

	t.Setenv("OGKORT_BASE_URL", "https://staging.example.com")
	t.Setenv("OGKORT_NTFY_TOPIC", "from-env")

	cfg, err := Load(configFile)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Site.BaseURL != "https://staging.example.com" {
		t.Errorf("Expected base_url from environment, got '%s'", cfg.Site.BaseURL)
	}

	if cfg.Ntfy.Topic != "from-env" {
		t.Errorf("Expected ntfy topic from environment, got '%s'", cfg.Ntfy.Topic)
	}
}

func TestValidateConfig(t *testing.T) {
	valid := func() Config {
		return Config{
			Site: SiteConfig{
				BaseURL: "https://example.com",
				Root:    "site",
			},
			Assets: AssetsConfig{
				Avatar:     "avatar.png",
				Stylesheet: "og.css",
			},
			Compressor: CompressorConfig{Quality: 95},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing base_url",
			mutate:  func(c *Config) { c.Site.BaseURL = "" },
			wantErr: true,
		},
		{
			name:    "missing root",
			mutate:  func(c *Config) { c.Site.Root = "" },
			wantErr: true,
		},
		{
			name:    "missing avatar",
			mutate:  func(c *Config) { c.Assets.Avatar = "" },
			wantErr: true,
		},
		{
			name:    "missing stylesheet",
			mutate:  func(c *Config) { c.Assets.Stylesheet = "" },
			wantErr: true,
		},
		{
			name:    "quality out of range",
			mutate:  func(c *Config) { c.Compressor.Quality = 101 },
			wantErr: true,
		},
		{
			name:    "negative jobs",
			mutate:  func(c *Config) { c.Build.Jobs = -1 },
			wantErr: true,
		},
		{
			name:    "ntfy enabled without topic",
			mutate:  func(c *Config) { c.Ntfy.Enabled = true },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
