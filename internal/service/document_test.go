package service

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"doccms/internal/docstore"
	"doccms/internal/logging"
	"doccms/internal/model"
	"doccms/internal/repository"
	repoMocks "doccms/internal/repository/mocks"
	"doccms/internal/storage"
)

type fixture struct {
	svc  DocumentService
	auth AuthService
	dir  string
	repo *repoMocks.MockActivityRepository
	logs *bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	for name, content := range map[string]string{
		"about.md":    "# Ruby is...\n",
		"changes.txt": "old content",
		"history.txt": "Ruby 0.95 released",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	backend, err := storage.NewLocal(dir)
	require.NoError(t, err)

	repo := new(repoMocks.MockActivityRepository)
	logs := &bytes.Buffer{}
	log := logging.New(logs, time.UTC)
	gate := NewAccessGate(newCredentials(t))

	return &fixture{
		svc:  NewDocumentService(docstore.New(backend), gate, repo, log),
		auth: NewAuthService(gate, repo, log),
		dir:  dir,
		repo: repo,
		logs: logs,
	}
}

func (f *fixture) names(t *testing.T) []string {
	t.Helper()
	names, err := f.svc.List(context.Background())
	require.NoError(t, err)
	return names
}

func activity(action, document string) interface{} {
	return mock.MatchedBy(func(a *model.Activity) bool {
		return a.Action == action && a.Document == document && a.ID != "" && !a.CreatedAt.IsZero()
	})
}

func TestDocumentService_SignedOutNeverMutates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	signedOut := &model.Session{}
	before := f.names(t)

	_, err := f.svc.Create(ctx, signedOut, "hello")
	assert.ErrorIs(t, err, ErrNotAuthorized)

	assert.ErrorIs(t, f.svc.Update(ctx, signedOut, "changes.txt", "New content"), ErrNotAuthorized)
	assert.ErrorIs(t, f.svc.Delete(ctx, signedOut, "changes.txt"), ErrNotAuthorized)

	_, err = f.svc.Duplicate(ctx, signedOut, "changes.txt")
	assert.ErrorIs(t, err, ErrNotAuthorized)

	_, err = f.svc.Edit(ctx, signedOut, "changes.txt")
	assert.ErrorIs(t, err, ErrNotAuthorized)

	assert.ErrorIs(t, f.svc.Authorize(signedOut), ErrNotAuthorized)

	_, err = f.svc.Activity(ctx, signedOut, 10)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	assert.Equal(t, before, f.names(t))
	b, err := os.ReadFile(filepath.Join(f.dir, "changes.txt"))
	require.NoError(t, err)
	assert.Equal(t, "old content", string(b))
	f.repo.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestDocumentService_UpdateAfterSignIn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess := &model.Session{}

	assert.ErrorIs(t, f.svc.Update(ctx, sess, "changes.txt", "New content"), ErrNotAuthorized)

	f.repo.On("Record", ctx, activity(model.ActionSignedIn, "")).Return(nil).Once()
	f.repo.On("Record", ctx, activity(model.ActionUpdated, "changes.txt")).Return(nil).Once()

	require.NoError(t, f.auth.SignIn(ctx, sess, "natalie", "password"))
	require.NoError(t, f.svc.Update(ctx, sess, "changes.txt", "New content"))

	r, err := f.svc.View(ctx, "changes.txt")
	require.NoError(t, err)
	assert.Equal(t, "New content", r.Body)
	assert.Equal(t, model.PlainText, r.Kind)
	f.repo.AssertExpectations(t)
}

func TestDocumentService_Lifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess := &model.Session{SignedIn: true, Username: "admin"}

	f.repo.On("Record", ctx, mock.Anything).Return(nil)

	name, err := f.svc.Create(ctx, sess, "  hello.alkf ")
	require.NoError(t, err)
	assert.Equal(t, "hello.txt", name)
	assert.Contains(t, f.names(t), "hello.txt")

	dup, err := f.svc.Duplicate(ctx, sess, "changes.txt")
	require.NoError(t, err)
	assert.Equal(t, "changes1.txt", dup)

	dup, err = f.svc.Duplicate(ctx, sess, "changes.txt")
	require.NoError(t, err)
	assert.Equal(t, "changes2.txt", dup)

	doc, err := f.svc.Edit(ctx, sess, "changes.txt")
	require.NoError(t, err)
	assert.Equal(t, "old content", doc.Content)

	require.NoError(t, f.svc.Delete(ctx, sess, "changes.txt"))
	assert.NotContains(t, f.names(t), "changes.txt")

	assert.NoError(t, f.svc.Authorize(sess))

	f.repo.AssertCalled(t, "Record", ctx, activity(model.ActionCreated, "hello.txt"))
	f.repo.AssertCalled(t, "Record", ctx, activity(model.ActionDuplicated, "changes1.txt"))
	f.repo.AssertCalled(t, "Record", ctx, activity(model.ActionDeleted, "changes.txt"))
}

func TestDocumentService_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess := &model.Session{SignedIn: true, Username: "admin"}

	_, err := f.svc.Create(ctx, sess, "   ")
	assert.ErrorIs(t, err, docstore.ErrInvalidName)

	assert.ErrorIs(t, f.svc.Update(ctx, sess, "random.txt", "x"), docstore.ErrNotFound)
	assert.ErrorIs(t, f.svc.Delete(ctx, sess, "random.txt"), docstore.ErrNotFound)

	_, err = f.svc.Duplicate(ctx, sess, "random.txt")
	assert.ErrorIs(t, err, docstore.ErrNotFound)

	_, err = f.svc.View(ctx, "random.txt")
	assert.ErrorIs(t, err, docstore.ErrNotFound)

	f.repo.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestDocumentService_JournalFailureIsLogged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess := &model.Session{SignedIn: true, Username: "admin"}

	f.repo.On("Record", ctx, mock.Anything).Return(errors.New("db down"))

	name, err := f.svc.Create(ctx, sess, "notes.md")
	require.NoError(t, err)
	assert.Equal(t, "notes.md", name)
	assert.Contains(t, f.logs.String(), "activity_record_failed")
	assert.Contains(t, f.logs.String(), "db down")
}

func TestDocumentService_Activity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess := &model.Session{SignedIn: true, Username: "admin"}

	entries := []model.Activity{{ID: "1", Action: model.ActionCreated, Document: "a.txt"}}
	f.repo.On("Recent", ctx, 20).Return(entries, nil).Once()
	f.repo.On("Recent", ctx, 5).Return(nil, errors.New("db fail")).Once()

	got, err := f.svc.Activity(ctx, sess, 0)
	require.NoError(t, err)
	assert.Equal(t, entries, got)

	_, err = f.svc.Activity(ctx, sess, 5)
	assert.Error(t, err)
	f.repo.AssertExpectations(t)
}

func TestDocumentService_NopJournal(t *testing.T) {
	dir := t.TempDir()
	backend, err := storage.NewLocal(dir)
	require.NoError(t, err)
	svc := NewDocumentService(docstore.New(backend), NewAccessGate(newCredentials(t)), repository.Nop{}, logging.New(&bytes.Buffer{}, time.UTC))

	sess := &model.Session{SignedIn: true}
	_, err = svc.Create(context.Background(), sess, "x")
	require.NoError(t, err)

	got, err := svc.Activity(context.Background(), sess, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAuthService_SignOutJournalsUsername(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess := &model.Session{SignedIn: true, Username: "natalie"}

	f.repo.On("Record", ctx, mock.MatchedBy(func(a *model.Activity) bool {
		return a.Action == model.ActionSignedOut && a.Username == "natalie"
	})).Return(nil).Once()

	f.auth.SignOut(ctx, sess)
	assert.False(t, sess.SignedIn)
	f.repo.AssertExpectations(t)

	assert.ErrorIs(t, f.auth.SignIn(ctx, sess, "blah", "la"), ErrInvalidCredentials)
}
