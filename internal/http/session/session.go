// Package session carries model.Session between requests in a fiber session
// cookie. The middleware loads the state before the handler runs and writes
// it back afterwards; handlers read and mutate it through From.
package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"doccms/internal/model"
)

const (
	localKey = "cms_session"

	keySignedIn = "signed_in"
	keyUsername = "username"
	keyMessage  = "message"
)

// Manager owns the underlying fiber session store.
type Manager struct {
	store *session.Store
}

// New returns a Manager keeping sessions in fiber's in-memory storage.
func New(expiry time.Duration) *Manager {
	return &Manager{store: session.New(session.Config{
		Expiration:     expiry,
		CookieHTTPOnly: true,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
	})}
}

// Handler is the middleware that loads and saves the session state.
func (m *Manager) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := m.store.Get(c)
		if err != nil {
			return err
		}

		state := &model.Session{}
		state.SignedIn, _ = sess.Get(keySignedIn).(bool)
		state.Username, _ = sess.Get(keyUsername).(string)
		state.Message, _ = sess.Get(keyMessage).(string)
		c.Locals(localKey, state)

		err = c.Next()

		sess.Set(keySignedIn, state.SignedIn)
		setOrDelete(sess, keyUsername, state.Username)
		setOrDelete(sess, keyMessage, state.Message)
		if saveErr := sess.Save(); saveErr != nil && err == nil {
			return saveErr
		}
		return err
	}
}

func setOrDelete(sess *session.Session, key, value string) {
	if value == "" {
		sess.Delete(key)
		return
	}
	sess.Set(key, value)
}

// From returns the state loaded for this request. Without the middleware a
// fresh signed-out session is returned and later changes are dropped.
func From(c *fiber.Ctx) *model.Session {
	if s, ok := c.Locals(localKey).(*model.Session); ok {
		return s
	}
	s := &model.Session{}
	c.Locals(localKey, s)
	return s
}
