// Package web embeds the browser client served under /app.
package web

import (
	"embed"
	"io/fs"

	"github.com/labstack/echo/v4"
)

//go:embed static
var files embed.FS

// Static returns the client assets rooted at the static directory.
func Static() fs.FS {
	return echo.MustSubFS(files, "static")
}
