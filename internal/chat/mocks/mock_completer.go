package mocks

import (
	"context"

	"pdfviewer/internal/chat"
	"pdfviewer/internal/model"

	"github.com/stretchr/testify/mock"
)

var _ chat.Completer = (*MockCompleter)(nil)

type MockCompleter struct {
	mock.Mock
}

func (m *MockCompleter) Complete(ctx context.Context, messages []model.ChatMessage) (string, error) {
	args := m.Called(ctx, messages)
	return args.String(0), args.Error(1)
}
