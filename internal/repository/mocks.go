package repository

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/forge-os/pulse/internal/domain"
)

// Mock implementations of the repository interfaces, used by service and
// handler tests.

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Upsert(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockAccountRepository is a mock implementation of domain.AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Upsert(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) GetByName(ctx context.Context, name string) (*domain.Account, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) List(ctx context.Context, filter domain.AccountFilter) ([]*domain.Account, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateDSLT(ctx context.Context, accountID string, days int) error {
	args := m.Called(ctx, accountID, days)
	return args.Error(0)
}

// MockWorkflowRepository is a mock implementation of domain.WorkflowRepository
type MockWorkflowRepository struct {
	mock.Mock
}

func (m *MockWorkflowRepository) Upsert(ctx context.Context, workflow *domain.Workflow) error {
	args := m.Called(ctx, workflow)
	return args.Error(0)
}

// MockActionRepository is a mock implementation of domain.ActionRepository
type MockActionRepository struct {
	mock.Mock
}

func (m *MockActionRepository) Upsert(ctx context.Context, action *domain.Action) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}

func (m *MockActionRepository) GetLatestByAccount(ctx context.Context, accountID string) (*domain.Action, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Action), args.Error(1)
}

// MockTouchRepository is a mock implementation of domain.TouchRepository
type MockTouchRepository struct {
	mock.Mock
}

func (m *MockTouchRepository) Upsert(ctx context.Context, touch *domain.Touch) error {
	args := m.Called(ctx, touch)
	return args.Error(0)
}

func (m *MockTouchRepository) GetLatestByAccount(ctx context.Context, accountID string) (*domain.Touch, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Touch), args.Error(1)
}

// MockIngestionSourceRepository is a mock implementation of
// domain.IngestionSourceRepository
type MockIngestionSourceRepository struct {
	mock.Mock
}

func (m *MockIngestionSourceRepository) Create(ctx context.Context, source *domain.IngestionSource) error {
	args := m.Called(ctx, source)
	return args.Error(0)
}

func (m *MockIngestionSourceRepository) GetByID(ctx context.Context, id string) (*domain.IngestionSource, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IngestionSource), args.Error(1)
}

func (m *MockIngestionSourceRepository) GetBySpreadsheetID(ctx context.Context, spreadsheetID string) (*domain.IngestionSource, error) {
	args := m.Called(ctx, spreadsheetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IngestionSource), args.Error(1)
}

func (m *MockIngestionSourceRepository) List(ctx context.Context) ([]*domain.IngestionSource, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.IngestionSource), args.Error(1)
}

func (m *MockIngestionSourceRepository) Update(ctx context.Context, source *domain.IngestionSource) error {
	args := m.Called(ctx, source)
	return args.Error(0)
}

func (m *MockIngestionSourceRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockIngestionSourceRepository) RecordRun(ctx context.Context, spreadsheetID string, runAt time.Time, status string) error {
	args := m.Called(ctx, spreadsheetID, runAt, status)
	return args.Error(0)
}
