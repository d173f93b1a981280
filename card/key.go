package card

import "strings"

// Canvas size for every generated card. Social preview consumers expect
// exactly 1200x630.
const (
	CanvasWidth  = 1200
	CanvasHeight = 630
)

// Ext is the artifact file extension, dot included.
const Ext = ".png"

// OutputSubdir is where artifacts live below the site root. The tag
// resolver builds public URLs from the same value, so it is a package
// constant rather than configuration.
const OutputSubdir = "assets/og_images"

// OutputKey maps an entry identifier to its filesystem-safe artifact
// key: "/posts/hello-world" becomes "posts-hello-world". Generation and
// tag resolution both go through this function, so the two sides always
// agree on the filename without ever talking to each other.
func OutputKey(identifier string) string {
	key := strings.TrimPrefix(identifier, "/")
	return strings.ReplaceAll(key, "/", "-")
}

// Filename returns the artifact filename for an identifier.
func Filename(identifier string) string {
	return OutputKey(identifier) + Ext
}
