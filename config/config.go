package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"ogkort/rasterize"
)

// Config represents the application configuration
type Config struct {
	Site       SiteConfig       `yaml:"site"`
	Assets     AssetsConfig     `yaml:"assets"`
	Rasterizer RasterizerConfig `yaml:"rasterizer"`
	Compressor CompressorConfig `yaml:"compressor"`
	Build      BuildConfig      `yaml:"build"`
	Preview    PreviewConfig    `yaml:"preview"`
	Deploy     DeployConfig     `yaml:"deploy"`
	Ntfy       NtfyConfig       `yaml:"ntfy"`
}

type SiteConfig struct {
	// BaseURL is the public address of the site, used verbatim when
	// building image URLs for meta tags.
	BaseURL string `yaml:"base_url"`

	// Root is the Hugo site directory; generated images land below it.
	Root string `yaml:"root"`

	// ContentDir defaults to <root>/content.
	ContentDir string `yaml:"content_dir"`

	// Sections are the content folders holding entries, e.g. posts and
	// projects. Other folders are left alone.
	Sections []string `yaml:"sections"`

	// DefaultAuthor fills in for entries whose frontmatter has no author.
	DefaultAuthor string `yaml:"default_author"`
}

type AssetsConfig struct {
	Avatar     string `yaml:"avatar"`
	Stylesheet string `yaml:"stylesheet"`
}

type RasterizerConfig struct {
	Binary string `yaml:"binary"`

	// PreTouch creates the output file before the rasterizer runs. Some
	// rasterizer builds refuse to write to a path that does not already
	// exist; leave this on unless yours handles missing paths.
	PreTouch *bool `yaml:"pre_touch"`
}

// PreTouchEnabled reports whether the placeholder touch runs before
// rasterization. On when the config does not say otherwise.
func (r RasterizerConfig) PreTouchEnabled() bool {
	return r.PreTouch == nil || *r.PreTouch
}

type CompressorConfig struct {
	Binary  string `yaml:"binary"`
	Quality int    `yaml:"quality"`
}

type BuildConfig struct {
	// Jobs is the number of entries rasterized in parallel. The external
	// rasterizer is memory hungry; 1 is the safe default.
	Jobs int `yaml:"jobs"`

	// ReportPath, when set, receives a JSON summary after each build.
	ReportPath string `yaml:"report_path"`
}

type PreviewConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DeployConfig struct {
	RsyncTarget string `yaml:"rsync_target"`
	RsyncOpts   string `yaml:"rsync_opts"`
}

type NtfyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Server  string `yaml:"server"`
	Topic   string `yaml:"topic"`
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyEnv overlays environment variables on top of the file for the
// fields that tend to be machine-local or secret. The environment wins.
func (c *Config) applyEnv() {
	if v := os.Getenv("OGKORT_BASE_URL"); v != "" {
		c.Site.BaseURL = v
	}
	if v := os.Getenv("OGKORT_RSYNC_TARGET"); v != "" {
		c.Deploy.RsyncTarget = v
	}
	if v := os.Getenv("OGKORT_NTFY_TOPIC"); v != "" {
		c.Ntfy.Topic = v
	}
}

// applyDefaults fills unset fields. A compressor quality of 0 means
// unset; pass 1 if you really want the floor.
func (c *Config) applyDefaults() {
	if c.Site.ContentDir == "" {
		c.Site.ContentDir = filepath.Join(c.Site.Root, "content")
	}
	if len(c.Site.Sections) == 0 {
		c.Site.Sections = []string{"posts", "projects"}
	}
	if c.Rasterizer.Binary == "" {
		c.Rasterizer.Binary = rasterize.DefaultRasterizerBinary
	}
	if c.Compressor.Binary == "" {
		c.Compressor.Binary = rasterize.DefaultCompressorBinary
	}
	if c.Compressor.Quality == 0 {
		c.Compressor.Quality = 95
	}
	if c.Build.Jobs == 0 {
		c.Build.Jobs = 1
	}
	if c.Preview.Host == "" {
		c.Preview.Host = "127.0.0.1"
	}
	if c.Preview.Port == 0 {
		c.Preview.Port = 8421
	}
	if c.Deploy.RsyncOpts == "" {
		c.Deploy.RsyncOpts = "-az --delete"
	}
	if c.Ntfy.Server == "" {
		c.Ntfy.Server = "https://ntfy.sh"
	}
}

// Validate checks if required configuration fields are set
func (c *Config) Validate() error {
	if c.Site.BaseURL == "" {
		return fmt.Errorf("site.base_url is required")
	}
	if c.Site.Root == "" {
		return fmt.Errorf("site.root is required")
	}
	if c.Assets.Avatar == "" {
		return fmt.Errorf("assets.avatar is required")
	}
	if c.Assets.Stylesheet == "" {
		return fmt.Errorf("assets.stylesheet is required")
	}
	if c.Compressor.Quality < 0 || c.Compressor.Quality > 100 {
		return fmt.Errorf("compressor.quality must be between 0 and 100")
	}
	if c.Build.Jobs < 0 {
		return fmt.Errorf("build.jobs must not be negative")
	}
	if c.Ntfy.Enabled && c.Ntfy.Topic == "" {
		return fmt.Errorf("ntfy.topic is required when ntfy is enabled")
	}
	return nil
}
