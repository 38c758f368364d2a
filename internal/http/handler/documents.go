package handler

import (
	"errors"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"doccms/internal/docstore"
	"doccms/internal/http/session"
	"doccms/internal/http/view"
	"doccms/internal/model"
	"doccms/internal/service"
)

// Flash and validation messages.
const (
	msgSignInRequired = "You must be signed in to do that."
	msgNameRequired   = "A name is required."
	msgNameInvalid    = "Invalid document name."
)

// docName returns the :name path parameter, unescaped.
func docName(c *fiber.Ctx) string {
	raw := c.Params("name")
	name, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return name
}

func redirectHome(c *fiber.Ctx) error {
	return c.Redirect("/", fiber.StatusFound)
}

// recoverable turns the errors a user can cause into a flash message and a
// redirect to the index. Everything else is returned for the ErrorHandler.
func recoverable(c *fiber.Ctx, sess *model.Session, err error, name string) error {
	switch {
	case errors.Is(err, service.ErrNotAuthorized):
		sess.Flash(msgSignInRequired)
		return redirectHome(c)
	case errors.Is(err, docstore.ErrNotFound):
		sess.Flash(fmt.Sprintf("%s does not exist.", name))
		return redirectHome(c)
	default:
		return err
	}
}

// renderPage renders page inside the layout. The pending flash message is
// consumed unless data already carries a message.
func renderPage(c *fiber.Ctx, sess *model.Session, page string, data fiber.Map) error {
	if _, ok := data["Message"]; !ok {
		data["Message"] = sess.TakeMessage()
	}
	data["Session"] = sess
	return c.Render(page, data, view.Layout)
}

// Index lists every document.
func Index(docs service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := session.From(c)
		names, err := docs.List(c.UserContext())
		if err != nil {
			return err
		}
		return renderPage(c, sess, view.Index, fiber.Map{"Documents": names})
	}
}

// NewDocument shows the create form.
func NewDocument(docs service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := session.From(c)
		if err := docs.Authorize(sess); err != nil {
			return recoverable(c, sess, err, "")
		}
		return renderPage(c, sess, view.New, fiber.Map{"Title": "New document"})
	}
}

// CreateDocument handles the create form. Blank or unusable names re-render
// the form with status 422.
func CreateDocument(docs service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := session.From(c)
		raw := c.FormValue("file_name")

		name, err := docs.Create(c.UserContext(), sess, raw)
		if errors.Is(err, docstore.ErrInvalidName) {
			msg := msgNameInvalid
			if strings.TrimSpace(raw) == "" {
				msg = msgNameRequired
			}
			c.Status(fiber.StatusUnprocessableEntity)
			return renderPage(c, sess, view.New, fiber.Map{
				"Title":    "New document",
				"Message":  msg,
				"FileName": raw,
			})
		}
		if err != nil {
			return recoverable(c, sess, err, name)
		}

		sess.Flash(fmt.Sprintf("%s was created.", name))
		return redirectHome(c)
	}
}

// ShowDocument sends plain text documents as text/plain and renders markdown
// documents as an HTML page.
func ShowDocument(docs service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := session.From(c)
		name := docName(c)

		r, err := docs.View(c.UserContext(), name)
		if err != nil {
			return recoverable(c, sess, err, name)
		}

		switch r.Kind {
		case model.RenderedMarkdown:
			return renderPage(c, sess, view.Document, fiber.Map{
				"Title": r.Name,
				"Body":  template.HTML(r.Body),
			})
		case model.PlainText:
			c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
			return c.SendString(r.Body)
		default:
			return fmt.Errorf("unhandled rendered kind %v", r.Kind)
		}
	}
}

// EditDocument shows the edit form with the raw content.
func EditDocument(docs service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := session.From(c)
		name := docName(c)

		doc, err := docs.Edit(c.UserContext(), sess, name)
		if err != nil {
			return recoverable(c, sess, err, name)
		}
		return renderPage(c, sess, view.Edit, fiber.Map{"Title": "Edit " + name, "Doc": doc})
	}
}

// UpdateDocument saves the "changes" form field over the document content.
func UpdateDocument(docs service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := session.From(c)
		name := docName(c)

		if err := docs.Update(c.UserContext(), sess, name, c.FormValue("changes")); err != nil {
			return recoverable(c, sess, err, name)
		}
		sess.Flash(fmt.Sprintf("%s has been updated.", name))
		return redirectHome(c)
	}
}

// DeleteDocument removes the document.
func DeleteDocument(docs service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := session.From(c)
		name := docName(c)

		if err := docs.Delete(c.UserContext(), sess, name); err != nil {
			return recoverable(c, sess, err, name)
		}
		sess.Flash(fmt.Sprintf("%s was deleted.", name))
		return redirectHome(c)
	}
}

// DuplicateDocument creates the next empty copy in the document's family.
func DuplicateDocument(docs service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := session.From(c)
		name := docName(c)

		newName, err := docs.Duplicate(c.UserContext(), sess, name)
		if err != nil {
			return recoverable(c, sess, err, name)
		}
		sess.Flash(fmt.Sprintf("%s was created.", newName))
		return redirectHome(c)
	}
}
