package rasterize

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestWkhtmltoimageArgs(t *testing.T) {
	r := NewWkhtmltoimage("")

	if r.Binary != "wkhtmltoimage" {
		t.Errorf("Expected default binary 'wkhtmltoimage', got '%s'", r.Binary)
	}

	opts := Options{
		Width:             1200,
		Height:            630,
		Quality:           100,
		Zoom:              1,
		DisableSmartWidth: true,
		Stylesheet:        "/site/assets/og.css",
	}

	got := r.args(opts, "/site/assets/og_images/posts-hello-world.png")
	want := []string{
		"--width", "1200",
		"--height", "630",
		"--quality", "100",
		"--zoom", "1",
		"--enable-local-file-access",
		"--disable-smart-width",
		"--user-style-sheet", "/site/assets/og.css",
		"-",
		"/site/assets/og_images/posts-hello-world.png",
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("args mismatch:\ngot  %v\nwant %v", got, want)
	}
}

func TestWkhtmltoimageArgsMinimal(t *testing.T) {
	r := NewWkhtmltoimage("wkhtmltoimage-custom")

	got := r.args(Options{Width: 800, Height: 400, Quality: 80, Zoom: 2}, "out.png")
	want := []string{
		"--width", "800",
		"--height", "400",
		"--quality", "80",
		"--zoom", "2",
		"--enable-local-file-access",
		"-",
		"out.png",
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("args mismatch:\ngot  %v\nwant %v", got, want)
	}
}

func TestPngquantArgs(t *testing.T) {
	c := NewPngquant("")

	if c.Binary != "pngquant" {
		t.Errorf("Expected default binary 'pngquant', got '%s'", c.Binary)
	}

	got := c.args("/site/assets/og_images/posts-hello-world.png", 95)
	want := []string{
		"--force",
		"--ext", ".png",
		"--quality", "0-95",
		"/site/assets/og_images/posts-hello-world.png",
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("args mismatch:\ngot  %v\nwant %v", got, want)
	}
}

func TestCheckTools(t *testing.T) {
	// Put a fake executable on PATH.
	binDir := t.TempDir()
	fake := filepath.Join(binDir, "fake-rasterizer")
	if err := os.WriteFile(fake, []byte("#!/bin/sh\nexit 0\n"), 0755); err != nil {
		t.Fatalf("Failed to create fake binary: %v", err)
	}
	t.Setenv("PATH", binDir)

	if err := CheckTools("fake-rasterizer"); err != nil {
		t.Errorf("Expected fake binary to be found: %v", err)
	}

	if err := CheckTools("fake-rasterizer", "definitely-not-installed"); err == nil {
		t.Error("Expected error for missing binary")
	}
}
