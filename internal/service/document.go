package service

import (
	"context"

	"github.com/rs/zerolog"

	"doccms/internal/model"
	"doccms/internal/repository"
)

// DocumentStore is the subset of *docstore.Store the service delegates to.
type DocumentStore interface {
	List(ctx context.Context) ([]string, error)
	Read(ctx context.Context, name string) (*model.Rendered, error)
	Source(ctx context.Context, name string) (*model.Document, error)
	Write(ctx context.Context, name, content string) error
	Create(ctx context.Context, rawName string) (string, error)
	Delete(ctx context.Context, name string) error
	Duplicate(ctx context.Context, name string) (string, error)
}

// DocumentService defines the document use cases. Reads are open to everyone;
// everything else requires a signed-in session and returns ErrNotAuthorized
// without touching the store otherwise.
type DocumentService interface {
	// List returns every document name.
	List(ctx context.Context) ([]string, error)

	// View returns a document rendered for display.
	View(ctx context.Context, name string) (*model.Rendered, error)

	// Authorize gates views that do not touch a document, such as the "new document" form.
	Authorize(s *model.Session) error

	// Edit returns the raw document for the edit form.
	Edit(ctx context.Context, s *model.Session, name string) (*model.Document, error)

	// Create makes a document from a user-supplied name and returns the normalized name.
	Create(ctx context.Context, s *model.Session, rawName string) (string, error)

	// Update overwrites the content of an existing document.
	Update(ctx context.Context, s *model.Session, name, content string) error

	// Delete removes a document.
	Delete(ctx context.Context, s *model.Session, name string) error

	// Duplicate creates the next empty member of the document's family and returns its name.
	Duplicate(ctx context.Context, s *model.Session, name string) (string, error)

	// Activity returns the newest journal entries.
	Activity(ctx context.Context, s *model.Session, limit int) ([]model.Activity, error)
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store   DocumentStore
	gate    *AccessGate
	journal journal
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store DocumentStore, gate *AccessGate, activity repository.ActivityRepository, log zerolog.Logger) DocumentService {
	return &documentService{
		store:   store,
		gate:    gate,
		journal: journal{repo: activity, log: log},
	}
}

func (s *documentService) List(ctx context.Context) ([]string, error) {
	return s.store.List(ctx)
}

func (s *documentService) View(ctx context.Context, name string) (*model.Rendered, error) {
	return s.store.Read(ctx, name)
}

func (s *documentService) Authorize(sess *model.Session) error {
	return s.gate.Authorize(sess)
}

func (s *documentService) Edit(ctx context.Context, sess *model.Session, name string) (*model.Document, error) {
	if err := s.gate.Authorize(sess); err != nil {
		return nil, err
	}
	return s.store.Source(ctx, name)
}

func (s *documentService) Create(ctx context.Context, sess *model.Session, rawName string) (string, error) {
	if err := s.gate.Authorize(sess); err != nil {
		return "", err
	}
	name, err := s.store.Create(ctx, rawName)
	if err != nil {
		return "", err
	}
	s.journal.record(ctx, model.ActionCreated, name, sess.Username)
	return name, nil
}

func (s *documentService) Update(ctx context.Context, sess *model.Session, name, content string) error {
	if err := s.gate.Authorize(sess); err != nil {
		return err
	}
	if err := s.store.Write(ctx, name, content); err != nil {
		return err
	}
	s.journal.record(ctx, model.ActionUpdated, name, sess.Username)
	return nil
}

func (s *documentService) Delete(ctx context.Context, sess *model.Session, name string) error {
	if err := s.gate.Authorize(sess); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, name); err != nil {
		return err
	}
	s.journal.record(ctx, model.ActionDeleted, name, sess.Username)
	return nil
}

func (s *documentService) Duplicate(ctx context.Context, sess *model.Session, name string) (string, error) {
	if err := s.gate.Authorize(sess); err != nil {
		return "", err
	}
	newName, err := s.store.Duplicate(ctx, name)
	if err != nil {
		return "", err
	}
	s.journal.record(ctx, model.ActionDuplicated, newName, sess.Username)
	return newName, nil
}

func (s *documentService) Activity(ctx context.Context, sess *model.Session, limit int) ([]model.Activity, error) {
	if err := s.gate.Authorize(sess); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	return s.journal.repo.Recent(ctx, limit)
}
