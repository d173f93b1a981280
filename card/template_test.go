package card

import (
	"strings"
	"testing"
)

func TestRenderHTML(t *testing.T) {
	html, err := RenderHTML(CardData{
		Title:      "Hello",
		Author:     "Jane",
		Avatar:     "data:image/png;base64,aGVsbG8=",
		Stylesheet: "/assets/og.css",
	})
	if err != nil {
		t.Fatalf("RenderHTML failed: %v", err)
	}

	if !strings.Contains(html, `<h1 class="title">Hello</h1>`) {
		t.Error("Expected title heading in rendered card")
	}

	if !strings.Contains(html, `<h2 class="author">Jane</h2>`) {
		t.Error("Expected author line in rendered card")
	}

	// The data URI must survive templating untouched or the rasterizer
	// gets a broken image.
	if !strings.Contains(html, `src="data:image/png;base64,aGVsbG8="`) {
		t.Error("Expected avatar data URI in rendered card")
	}

	if !strings.Contains(html, `href="/assets/og.css"`) {
		t.Error("Expected stylesheet link in rendered card")
	}
}

func TestRenderHTMLEscapesMarkup(t *testing.T) {
	html, err := RenderHTML(CardData{
		Title:  `<script>alert("x")</script>`,
		Author: "A & B",
	})
	if err != nil {
		t.Fatalf("RenderHTML failed: %v", err)
	}

	if strings.Contains(html, "<script>") {
		t.Error("Title markup must be escaped")
	}

	if !strings.Contains(html, "A &amp; B") {
		t.Error("Author must be HTML-escaped")
	}
}
