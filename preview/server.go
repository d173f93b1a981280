package preview

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"

	"ogkort/card"
	"ogkort/config"
	"ogkort/content"
	"ogkort/tags"
)

// Server shows the generated card set in a browser: a gallery of every
// entry with its image and meta tags, the raw card HTML for styling
// work, and the image files themselves. It is a styling aid; nothing in
// the build pipeline depends on it.
type Server struct {
	cfg      *config.Config
	store    *card.Store
	resolver *tags.Resolver
	avatar   *card.Avatar
}

// NewServer creates a preview server over the site's generated images.
func NewServer(cfg *config.Config, avatar *card.Avatar) *Server {
	return &Server{
		cfg:      cfg,
		store:    card.NewStore(card.OutputDir(cfg.Site.Root)),
		resolver: tags.NewResolver(cfg.Site.BaseURL),
		avatar:   avatar,
	}
}

// Handler returns the route table. Split from Start so tests can drive
// the server without a listener.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/og_images/", http.StripPrefix("/og_images/", http.FileServer(http.Dir(s.store.Dir()))))
	mux.HandleFunc("/card/", s.handleCard)
	mux.HandleFunc("/card.css", s.handleStylesheet)
	mux.HandleFunc("/", s.handleGallery)
	return mux
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Preview.Host, s.cfg.Preview.Port)
	log.Printf("Preview server starting on http://%s", addr)

	return http.ListenAndServe(addr, s.Handler())
}

// galleryCard is one row of the gallery page.
type galleryCard struct {
	ID       string
	Title    string
	Author   string
	Key      string
	Missing  bool
	MetaTags string
}

// handleGallery lists every entry with its card image and the meta tags
// a page for it would carry.
func (s *Server) handleGallery(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	entries, err := content.Discover(s.cfg.Site.ContentDir, s.cfg.Site.Sections, s.cfg.Site.DefaultAuthor)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	cards := make([]galleryCard, 0, len(entries))
	for _, entry := range entries {
		key := card.OutputKey(entry.ID)
		cards = append(cards, galleryCard{
			ID:       entry.ID,
			Title:    entry.Title,
			Author:   entry.Author,
			Key:      key,
			Missing:  !s.store.Exists(key),
			MetaTags: s.resolver.MetaTags(tags.ForIdentifier(entry.ID)),
		})
	}

	tmpl := template.Must(template.New("gallery").Parse(galleryTemplate))
	tmpl.Execute(w, cards)
}

// handleCard serves the rendered card HTML for one entry, with the
// stylesheet swapped to a server route so it can be edited and
// reloaded without rasterizing anything.
func (s *Server) handleCard(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(r.URL.Path, "/card/")

	entries, err := content.Discover(s.cfg.Site.ContentDir, s.cfg.Site.Sections, s.cfg.Site.DefaultAuthor)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	for _, entry := range entries {
		if card.OutputKey(entry.ID) != key {
			continue
		}

		html, err := card.RenderHTML(card.CardData{
			Title:      entry.Title,
			Author:     entry.Author,
			Avatar:     s.avatar.DataURI(),
			Stylesheet: "/card.css",
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, html)
		return
	}

	http.Error(w, "Entry not found", http.StatusNotFound)
}

// handleStylesheet serves the card stylesheet from wherever the config
// points.
func (s *Server) handleStylesheet(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, s.cfg.Assets.Stylesheet)
}

const galleryTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Card Gallery</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
            max-width: 900px;
            margin: 40px auto;
            padding: 20px;
            line-height: 1.6;
        }
        .header {
            border-bottom: 2px solid #333;
            padding-bottom: 20px;
            margin-bottom: 30px;
        }
        .card-row {
            background: #f5f5f5;
            padding: 20px;
            margin: 20px 0;
            border-radius: 8px;
        }
        .card-row img {
            max-width: 100%;
            border: 1px solid #ccc;
        }
        .missing {
            background: #fff3cd;
            border-left: 4px solid #ffc107;
            padding: 15px;
            border-radius: 4px;
        }
        .meta {
            background: #272822;
            color: #f8f8f2;
            padding: 12px;
            border-radius: 4px;
            font-size: 13px;
            overflow-x: auto;
        }
        a { color: #2196F3; }
    </style>
</head>
<body>
    <div class="header">
        <h1>🖼 Card Gallery</h1>
        <p>{{len .}} entries. Images are served straight from the output directory; delete a file and rebuild to refresh it.</p>
    </div>

    {{range .}}
    <div class="card-row">
        <h2>{{.Title}}</h2>
        <p><strong>{{.Author}}</strong> &middot; <code>{{.ID}}</code> &middot; <a href="/card/{{.Key}}">card HTML</a></p>
        {{if .Missing}}
        <div class="missing">No image generated yet. Run a build, then reload.</div>
        {{else}}
        <img src="/og_images/{{.Key}}.png" alt="{{.Title}}">
        {{end}}
        <pre class="meta">{{.MetaTags}}</pre>
    </div>
    {{end}}
</body>
</html>
`
