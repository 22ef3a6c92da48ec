package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"leaseintake/internal/pipeline"
	"leaseintake/internal/service"
)

type MockIntakeService struct {
	mock.Mock
}

func (m *MockIntakeService) Upload(ctx context.Context, in service.UploadInput) (*service.UploadResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadResult), args.Error(1)
}

func (m *MockIntakeService) Process(ctx context.Context, in service.ProcessInput) (*service.ProcessResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProcessResult), args.Error(1)
}

func (m *MockIntakeService) Save(ctx context.Context, in service.SaveInput) (*service.SaveResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SaveResult), args.Error(1)
}

func (m *MockIntakeService) Run(ctx context.Context, in service.UploadInput, obs pipeline.Observer) *pipeline.Document {
	args := m.Called(ctx, in, obs)
	d, _ := args.Get(0).(*pipeline.Document)
	return d
}

func (m *MockIntakeService) RunBatch(ctx context.Context, target service.ProjectTarget, files []service.FileInput, obs pipeline.Observer) []*pipeline.Document {
	args := m.Called(ctx, target, files, obs)
	docs, _ := args.Get(0).([]*pipeline.Document)
	return docs
}
