package card

import (
	"bytes"
	"fmt"
	"html/template"
)

// CardData holds everything the card template needs. Avatar is a ready
// data: URI so the rasterizer never fetches anything over the network;
// Stylesheet is emitted as the <link> href (a file path when
// rasterizing, a server route when previewing).
type CardData struct {
	Title      string
	Author     string
	Avatar     template.URL
	Stylesheet string
}

var cardTmpl = template.Must(template.New("card").Parse(cardTemplate))

// RenderHTML fills the card template. The template has exactly two
// visible insertion points, the title heading and the author line; all
// layout comes from the stylesheet.
func RenderHTML(data CardData) (string, error) {
	var buf bytes.Buffer
	if err := cardTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render card template: %w", err)
	}
	return buf.String(), nil
}

const cardTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <link rel="stylesheet" href="{{.Stylesheet}}">
</head>
<body>
    <div class="card">
        <img class="avatar" src="{{.Avatar}}" alt="">
        <h1 class="title">{{.Title}}</h1>
        <h2 class="author">{{.Author}}</h2>
    </div>
</body>
</html>
`
