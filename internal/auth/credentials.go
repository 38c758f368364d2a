// Package auth stores user credentials: a YAML mapping of username to bcrypt
// password hash.
package auth

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

// ErrUsernameRequired is returned by Set for a blank username.
var ErrUsernameRequired = errors.New("username is required")

// Credentials is an in-memory copy of the credential file. It is not safe for
// concurrent Set calls; the server only reads it.
type Credentials struct {
	path  string
	users map[string]string
	cost  int
}

// LoadCredentials reads the YAML file at path. A missing file yields an empty
// store that Save will create.
func LoadCredentials(path string) (*Credentials, error) {
	c := &Credentials{path: path, users: map[string]string{}, cost: bcrypt.DefaultCost}

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return c, nil
		}
		return nil, fmt.Errorf("read credentials %q: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &c.users); err != nil {
		return nil, fmt.Errorf("parse credentials %q: %w", path, err)
	}
	if c.users == nil {
		c.users = map[string]string{}
	}
	return c, nil
}

// WithCost changes the bcrypt cost used by Set. Tests use bcrypt.MinCost.
func (c *Credentials) WithCost(cost int) *Credentials {
	c.cost = cost
	return c
}

// Lookup returns the stored hash for username.
func (c *Credentials) Lookup(username string) (string, bool) {
	hash, ok := c.users[username]
	return hash, ok
}

// Verify reports whether password matches hash.
func (c *Credentials) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Set hashes password and stores it for username, replacing any previous one.
func (c *Credentials) Set(username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrUsernameRequired
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), c.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	c.users[username] = string(hash)
	return nil
}

// Usernames returns the known usernames, sorted.
func (c *Credentials) Usernames() []string {
	names := make([]string, 0, len(c.users))
	for u := range c.users {
		names = append(names, u)
	}
	sort.Strings(names)
	return names
}

// Save writes the store back to its file.
func (c *Credentials) Save() error {
	b, err := yaml.Marshal(c.users)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	if err := os.WriteFile(c.path, b, 0o600); err != nil {
		return fmt.Errorf("write credentials %q: %w", c.path, err)
	}
	return nil
}
