package routes

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
)

// RegisterStaticRoutes serves the browser client. It must be mounted before
// the credential gate: static assets are public.
func RegisterStaticRoutes(app *fiber.App, assets fs.FS) {
	app.Use(filesystem.New(filesystem.Config{
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api")
		},
		Root:   http.FS(assets),
		Index:  "index.html",
		MaxAge: 300,
	}))
}
