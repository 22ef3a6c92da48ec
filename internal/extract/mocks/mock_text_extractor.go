package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockTextExtractor struct {
	mock.Mock
}

func (m *MockTextExtractor) Extract(ctx context.Context, fileURL, fileName string) (string, error) {
	args := m.Called(ctx, fileURL, fileName)
	return args.String(0), args.Error(1)
}
