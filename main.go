package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"ogkort/builder"
	"ogkort/card"
	"ogkort/config"
	"ogkort/deployer"
	"ogkort/preview"
	"ogkort/rasterize"
	"ogkort/tags"
	"ogkort/watcher"
)

// version is overridden at build time via -ldflags.
var version = "dev"

var CLI struct {
	Config string `short:"c" help:"Configuration file path" default:"ogkort.yaml"`

	Generate struct {
		Report string `short:"r" help:"Write a JSON build report to this path"`
	} `cmd:"" help:"Generate preview cards for all published entries"`

	Watch struct{} `cmd:"" help:"Watch content sections and regenerate cards on change"`

	Preview struct{} `cmd:"" help:"Serve the card gallery for local inspection"`

	Resolve struct {
		Identifier string `arg:"" optional:"" help:"Entry identifier, e.g. /posts/hello-world"`
	} `cmd:"" help:"Print the og:image meta tags for an entry"`

	Sync struct{} `cmd:"" help:"Rsync generated images to the webhost"`

	Version struct{} `cmd:"" help:"Print the version"`
}

func main() {
	ctx := kong.Parse(&CLI)

	// A .env file may carry OGKORT_* overrides; a missing file is fine.
	_ = godotenv.Load()

	switch ctx.Command() {
	case "generate":
		if err := runGenerate(loadConfig()); err != nil {
			log.Fatalf("Generate failed: %v", err)
		}
	case "watch":
		if err := runWatch(loadConfig()); err != nil {
			log.Fatalf("Watch failed: %v", err)
		}
	case "preview":
		if err := runPreview(loadConfig()); err != nil {
			log.Fatalf("Preview failed: %v", err)
		}
	case "resolve <identifier>", "resolve":
		runResolve(loadConfig())
	case "sync":
		if err := deployer.NewDeployer(loadConfig()).Sync(); err != nil {
			log.Fatalf("Sync failed: %v", err)
		}
	case "version":
		fmt.Println("ogkort " + version)
	}
}

func loadConfig() *config.Config {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func runGenerate(cfg *config.Config) error {
	if err := rasterize.CheckTools(cfg.Rasterizer.Binary, cfg.Compressor.Binary); err != nil {
		return err
	}

	b, err := builder.New(cfg)
	if err != nil {
		return err
	}

	report, err := b.Run()
	if err != nil {
		return err
	}

	reportPath := CLI.Generate.Report
	if reportPath == "" {
		reportPath = cfg.Build.ReportPath
	}
	if reportPath != "" {
		if err := report.Write(reportPath); err != nil {
			return err
		}
		log.Printf("Build report written to %s", reportPath)
	}

	if report.Failed > 0 {
		return fmt.Errorf("%d card(s) failed to generate", report.Failed)
	}
	return nil
}

func runWatch(cfg *config.Config) error {
	fmt.Println("Ogkort - Open Graph Card Generator")
	fmt.Println("==================================")

	if err := rasterize.CheckTools(cfg.Rasterizer.Binary, cfg.Compressor.Binary); err != nil {
		return err
	}

	log.Printf("Loaded config: watching %s", cfg.Site.ContentDir)

	b, err := builder.New(cfg)
	if err != nil {
		return err
	}

	w, err := watcher.NewWatcher(cfg, b.Generator())
	if err != nil {
		return err
	}

	if err := w.Start(); err != nil {
		return err
	}

	log.Println("Watcher started. Monitoring for entry changes...")
	log.Println("Press Ctrl+C to stop")

	// Listen for events
	go func() {
		for event := range w.Events() {
			log.Printf("📄 Event: %v - %s", event.Type, event.FilePath)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down...")
	return w.Stop()
}

func runPreview(cfg *config.Config) error {
	avatar, err := card.LoadAvatar(cfg.Assets.Avatar)
	if err != nil {
		return err
	}

	srv := preview.NewServer(cfg, avatar)
	log.Printf("Card gallery on http://%s:%d", cfg.Preview.Host, cfg.Preview.Port)
	return srv.Start()
}

func runResolve(cfg *config.Config) {
	resolver := tags.NewResolver(cfg.Site.BaseURL)
	fmt.Println(resolver.MetaTags(tags.ForIdentifier(CLI.Resolve.Identifier)))
}
