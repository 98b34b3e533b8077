// Package webui embeds the browser client and serves it as static assets.
package webui

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed assets
var assets embed.FS

// Handler serves the embedded client; index.html answers the root path.
func Handler() http.Handler {
	sub, err := fs.Sub(assets, "assets")
	if err != nil {
		// The embed is fixed at build time; a missing subtree is a build bug.
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
