// Package view holds the HTML templates and the fiber view engine that renders them.
package view

import (
	"embed"
	"io/fs"
	"net/http"
	"net/url"

	"github.com/gofiber/template/html/v2"
)

// Layout wraps every page.
const Layout = "layout"

// Page names.
const (
	Index    = "index"
	New      = "new"
	Edit     = "edit"
	SignIn   = "sign_in"
	Document = "document"
	Error    = "error"
)

//go:embed templates/*.html
var templates embed.FS

// NewEngine returns a fiber.Views implementation over the embedded templates.
func NewEngine() *html.Engine {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("docPath", DocPath)
	return engine
}

// DocPath returns the URL path of a document. The name is escaped as a single
// path segment, so characters such as '?', '#' and '%' stay part of it.
func DocPath(name string) string {
	return "/" + url.PathEscape(name)
}
