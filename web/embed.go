// Package web holds the HTML templates and static assets of the site.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates static
var files embed.FS

// Templates returns the template tree rooted at templates/.
func Templates() fs.FS {
	return sub("templates")
}

// Static returns the assets copied verbatim to the site root.
func Static() fs.FS {
	return sub("static")
}

func sub(dir string) fs.FS {
	s, err := fs.Sub(files, dir)
	if err != nil {
		panic(err)
	}
	return s
}
