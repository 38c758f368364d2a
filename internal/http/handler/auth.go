package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"doccms/internal/http/session"
	"doccms/internal/http/view"
	"doccms/internal/service"
)

const (
	msgWelcome            = "Welcome!"
	msgSignedOut          = "You have been signed out."
	msgInvalidCredentials = "Invalid Credentials"
)

// SignInForm shows the sign in form.
func SignInForm() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return renderPage(c, session.From(c), view.SignIn, fiber.Map{"Title": "Sign In"})
	}
}

// SignIn checks the submitted credentials. A rejected attempt re-renders the
// form with status 422 and the username filled in.
func SignIn(auth service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := session.From(c)
		username := c.FormValue("username")

		err := auth.SignIn(c.UserContext(), sess, username, c.FormValue("password"))
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.Status(fiber.StatusUnprocessableEntity)
			return renderPage(c, sess, view.SignIn, fiber.Map{
				"Title":    "Sign In",
				"Message":  msgInvalidCredentials,
				"Username": username,
			})
		}
		if err != nil {
			return err
		}

		sess.Flash(msgWelcome)
		return redirectHome(c)
	}
}

// SignOut ends the signed in state.
func SignOut(auth service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := session.From(c)
		auth.SignOut(c.UserContext(), sess)
		sess.Flash(msgSignedOut)
		return redirectHome(c)
	}
}
