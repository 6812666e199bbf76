package web

import (
	"embed"
	"io/fs"
	"os"
)

//go:embed static
var static embed.FS

// Assets returns the browser client. An empty dir selects the embedded copy.
func Assets(dir string) (fs.FS, error) {
	if dir != "" {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
		return os.DirFS(dir), nil
	}
	return fs.Sub(static, "static")
}
