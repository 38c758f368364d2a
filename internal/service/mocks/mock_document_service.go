package mocks

import (
	"context"

	"doccms/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) List(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockDocumentService) View(ctx context.Context, name string) (*model.Rendered, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Rendered), args.Error(1)
}

func (m *MockDocumentService) Authorize(s *model.Session) error {
	args := m.Called(s)
	return args.Error(0)
}

func (m *MockDocumentService) Edit(ctx context.Context, s *model.Session, name string) (*model.Document, error) {
	args := m.Called(ctx, s, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) Create(ctx context.Context, s *model.Session, rawName string) (string, error) {
	args := m.Called(ctx, s, rawName)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentService) Update(ctx context.Context, s *model.Session, name, content string) error {
	args := m.Called(ctx, s, name, content)
	return args.Error(0)
}

func (m *MockDocumentService) Delete(ctx context.Context, s *model.Session, name string) error {
	args := m.Called(ctx, s, name)
	return args.Error(0)
}

func (m *MockDocumentService) Duplicate(ctx context.Context, s *model.Session, name string) (string, error) {
	args := m.Called(ctx, s, name)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentService) Activity(ctx context.Context, s *model.Session, limit int) ([]model.Activity, error) {
	args := m.Called(ctx, s, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Activity), args.Error(1)
}
