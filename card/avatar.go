package card

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"image"
	"image/png"
	"os"

	_ "image/gif"
	_ "image/jpeg"

	"golang.org/x/image/draw"
)

// avatarMaxSize caps the longest edge of the embedded avatar. The card
// shows it small; embedding a full-size photo bloats every rendered
// document for no visual gain.
const avatarMaxSize = 200

// Avatar is the author image embedded into every card. It is decoded,
// downscaled and base64-encoded once per process and reused for each
// render.
type Avatar struct {
	dataURI template.URL
}

// LoadAvatar reads an image file (PNG, JPEG or GIF), scales it down to
// avatarMaxSize when larger, and encodes it as a PNG data URI.
func LoadAvatar(path string) (*Avatar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open avatar: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode avatar %s: %w", path, err)
	}

	img = scaleDown(img, avatarMaxSize)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode avatar: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(buf.Bytes())
	return &Avatar{dataURI: template.URL("data:image/png;base64," + encoded)}, nil
}

// DataURI returns the embeddable data: URI for the avatar.
func (a *Avatar) DataURI() template.URL {
	return a.dataURI
}

// scaleDown resizes an image so its longest edge is at most max pixels,
// keeping the aspect ratio. Images already small enough pass through.
func scaleDown(img image.Image, max int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= max && h <= max {
		return img
	}

	nw, nh := max, max
	if w > h {
		nh = h * max / w
	} else {
		nw = w * max / h
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
