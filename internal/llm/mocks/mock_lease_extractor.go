package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"leaseintake/internal/model"
)

type MockLeaseExtractor struct {
	mock.Mock
}

func (m *MockLeaseExtractor) Extract(ctx context.Context, text string) (*model.LeaseRecord, json.RawMessage, error) {
	args := m.Called(ctx, text)
	rec, _ := args.Get(0).(*model.LeaseRecord)
	raw, _ := args.Get(1).(json.RawMessage)
	return rec, raw, args.Error(2)
}
