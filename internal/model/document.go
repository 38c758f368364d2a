package model

import "path"

// Extensions a document may carry. Anything else is coerced to ExtText when a
// document is created or duplicated.
const (
	ExtText     = ".txt"
	ExtMarkdown = ".md"
)

// AllowedExtensions lists ExtText and ExtMarkdown in display order.
var AllowedExtensions = []string{ExtText, ExtMarkdown}

// RenderedKind tells the view layer how a document body must be presented.
type RenderedKind int

const (
	// PlainText bodies are sent verbatim as text/plain.
	PlainText RenderedKind = iota
	// RenderedMarkdown bodies hold HTML produced from markdown source.
	RenderedMarkdown
)

func (k RenderedKind) String() string {
	switch k {
	case RenderedMarkdown:
		return "markdown"
	default:
		return "text"
	}
}

// KindFor maps a document name to the way it is rendered. Names with an
// extension outside AllowedExtensions are shown as plain text.
func KindFor(name string) RenderedKind {
	if path.Ext(name) == ExtMarkdown {
		return RenderedMarkdown
	}
	return PlainText
}

// Document is a named text or markdown file. The name is its only identity.
type Document struct {
	Name      string `json:"name"`
	Extension string `json:"extension"`
	Content   string `json:"content"`
}

// Rendered is a document body ready for the view layer.
type Rendered struct {
	Name string
	Kind RenderedKind
	Body string
}
