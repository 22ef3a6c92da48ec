package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"leaseintake/internal/model"
	"leaseintake/internal/repository"
)

type MockLeaseRepository struct {
	mock.Mock
}

func (m *MockLeaseRepository) Save(ctx context.Context, doc *model.LeaseDocument) (*model.LeaseDocument, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LeaseDocument), args.Error(1)
}

func (m *MockLeaseRepository) FindByID(ctx context.Context, id string) (*model.LeaseDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LeaseDocument), args.Error(1)
}

func (m *MockLeaseRepository) ListByProject(ctx context.Context, projectID string, pq repository.PageQuery) (*repository.PageResult[model.LeaseDocument], error) {
	args := m.Called(ctx, projectID, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.LeaseDocument]), args.Error(1)
}

func (m *MockLeaseRepository) ListAllByProject(ctx context.Context, projectID string) ([]model.LeaseDocument, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LeaseDocument), args.Error(1)
}

func (m *MockLeaseRepository) Stats(ctx context.Context) (*model.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Stats), args.Error(1)
}
