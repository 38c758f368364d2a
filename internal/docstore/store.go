package docstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"slices"
	"sort"
	"strings"

	"github.com/yuin/goldmark"

	"doccms/internal/model"
	"doccms/internal/storage"
)

// Store owns the set of documents kept in a storage backend.
//
// Nothing is cached: every call lists the backend again. There is no locking
// either, so concurrent writes or deletes of one name race and the backend
// decides the winner.
type Store struct {
	backend  storage.Storage
	markdown goldmark.Markdown
}

// New constructs a Store over backend.
func New(backend storage.Storage) *Store {
	return &Store{backend: backend, markdown: goldmark.New()}
}

// List returns the names of all documents, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	objs, err := s.backend.List(ctx)
	if err != nil {
		return nil, &StorageError{Op: "list documents", Err: err}
	}
	names := make([]string, 0, len(objs))
	for _, o := range objs {
		names = append(names, o.Key)
	}
	sort.Strings(names)
	return names, nil
}

// Exists reports whether name is currently in the store.
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	names, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(names, name), nil
}

func (s *Store) mustExist(ctx context.Context, name string) error {
	ok, err := s.Exists(ctx, name)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return nil
}

// Source returns the document with its raw content.
func (s *Store) Source(ctx context.Context, name string) (*model.Document, error) {
	if err := s.mustExist(ctx, name); err != nil {
		return nil, err
	}
	rc, _, err := s.backend.Get(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
		}
		return nil, &StorageError{Op: "read document", Name: name, Err: err}
	}
	defer rc.Close()

	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, &StorageError{Op: "read document", Name: name, Err: err}
	}
	return &model.Document{Name: name, Extension: path.Ext(name), Content: string(b)}, nil
}

// Read returns the document body prepared for display: literal text for
// .txt (and any unrecognised extension), HTML for .md.
func (s *Store) Read(ctx context.Context, name string) (*model.Rendered, error) {
	doc, err := s.Source(ctx, name)
	if err != nil {
		return nil, err
	}

	kind := model.KindFor(name)
	switch kind {
	case model.RenderedMarkdown:
		var buf bytes.Buffer
		if err := s.markdown.Convert([]byte(doc.Content), &buf); err != nil {
			return nil, fmt.Errorf("render markdown %q: %w", name, err)
		}
		return &model.Rendered{Name: name, Kind: kind, Body: buf.String()}, nil
	case model.PlainText:
		return &model.Rendered{Name: name, Kind: kind, Body: doc.Content}, nil
	default:
		return nil, fmt.Errorf("unhandled rendered kind %v", kind)
	}
}

// Write replaces the content of an existing document. It never creates one.
func (s *Store) Write(ctx context.Context, name, content string) error {
	if err := s.mustExist(ctx, name); err != nil {
		return err
	}
	_, err := s.backend.Put(ctx, name, strings.NewReader(content), storage.PutObjectOptions{
		Size:        int64(len(content)),
		ContentType: contentType(name),
	})
	if err != nil {
		return &StorageError{Op: "write document", Name: name, Err: err}
	}
	return nil
}

// Create trims rawName, normalizes its extension and makes sure a document of
// that name exists. An existing document keeps its content. The final name is
// returned.
func (s *Store) Create(ctx context.Context, rawName string) (string, error) {
	trimmed := strings.TrimSpace(rawName)
	if trimmed == "" {
		return "", ErrInvalidName
	}
	name := NormalizeName(trimmed)
	if !ValidName(name) {
		return "", fmt.Errorf("%q: %w", trimmed, ErrInvalidName)
	}
	if err := s.backend.Touch(ctx, name); err != nil {
		return "", &StorageError{Op: "create document", Name: name, Err: err}
	}
	return name, nil
}

// Delete removes a document.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := s.mustExist(ctx, name); err != nil {
		return err
	}
	if err := s.backend.Delete(ctx, name); err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return fmt.Errorf("%q: %w", name, ErrNotFound)
		}
		return &StorageError{Op: "delete document", Name: name, Err: err}
	}
	return nil
}

// Duplicate creates the next member of name's duplicate family and returns
// its name. The new document starts out empty; content is not copied.
func (s *Store) Duplicate(ctx context.Context, name string) (string, error) {
	names, err := s.List(ctx)
	if err != nil {
		return "", err
	}
	if !slices.Contains(names, name) {
		return "", fmt.Errorf("%q: %w", name, ErrNotFound)
	}

	newName, err := freeDuplicateName(name, names)
	if err != nil {
		return "", err
	}
	if err := s.backend.Touch(ctx, newName); err != nil {
		return "", &StorageError{Op: "duplicate document", Name: newName, Err: err}
	}
	return newName, nil
}

// freeDuplicateName retries DuplicateName while the candidate is taken, which
// happens when coercing the extension lands on an existing name. Stems whose
// digits are not counted by numericToken can repeat a candidate, so the
// attempts are bounded.
func freeDuplicateName(name string, names []string) (string, error) {
	taken := slices.Clone(names)
	candidate := DuplicateName(name, taken)
	for range len(names) + 1 {
		if !slices.Contains(taken, candidate) {
			return candidate, nil
		}
		taken = append(taken, candidate)
		candidate = DuplicateName(candidate, taken)
	}
	return "", fmt.Errorf("%q: %w", name, ErrNoFreeName)
}

func contentType(name string) string {
	if model.KindFor(name) == model.RenderedMarkdown {
		return "text/markdown"
	}
	return "text/plain"
}
