package main

import (
	"fmt"
	"log"
	"os"

	"ogkort/card"
	"ogkort/config"
	"ogkort/content"
)

// Renders the card HTML for one entry file to stdout, so the layout
// and stylesheet can be tweaked in a browser without rasterizing.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: test_card <entry-file>")
		os.Exit(1)
	}

	entryPath := os.Args[1]

	// Load config
	cfg, err := config.Load("ogkort.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Parse entry
	entry, err := content.ParseEntry(entryPath, cfg.Site.DefaultAuthor)
	if err != nil {
		log.Fatalf("Failed to parse entry: %v", err)
	}

	fmt.Fprintf(os.Stderr, "Entry: %s by %s\n", entry.Title, entry.Author)

	avatar, err := card.LoadAvatar(cfg.Assets.Avatar)
	if err != nil {
		log.Fatalf("Failed to load avatar: %v", err)
	}

	html, err := card.RenderHTML(card.CardData{
		Title:      entry.Title,
		Author:     entry.Author,
		Avatar:     avatar.DataURI(),
		Stylesheet: cfg.Assets.Stylesheet,
	})
	if err != nil {
		log.Fatalf("Failed to render card: %v", err)
	}

	fmt.Println(html)
}
