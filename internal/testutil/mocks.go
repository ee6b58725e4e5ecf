package testutil

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"timetracker/internal/domain"
)

// MockAPI is a mock for api.Service.
type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) GetUser(ctx context.Context, tgID, searchID int64) (*domain.User, error) {
	args := m.Called(tgID, searchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAPI) CreateUser(ctx context.Context, draft domain.UserDraft) (*domain.User, error) {
	args := m.Called(draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAPI) ListUsers(ctx context.Context, tgID int64, withRight bool) ([]domain.User, error) {
	args := m.Called(tgID, withRight)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockAPI) UpdateSelf(ctx context.Context, tgID int64, upd domain.UserUpdate) (*domain.User, error) {
	args := m.Called(tgID, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAPI) UpdateByAdmin(ctx context.Context, tgID, targetID int64, upd domain.AdminUserUpdate) (*domain.User, error) {
	args := m.Called(tgID, targetID, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAPI) DeleteUser(ctx context.Context, tgID, targetID int64) (string, error) {
	args := m.Called(tgID, targetID)
	return args.String(0), args.Error(1)
}

func (m *MockAPI) TimeControl(ctx context.Context, tgID int64, started bool) (string, error) {
	args := m.Called(tgID, started)
	return args.String(0), args.Error(1)
}

func (m *MockAPI) TimeReport(ctx context.Context, tgID int64, start, end time.Time, searchID int64) ([]domain.ReportEntry, error) {
	args := m.Called(tgID, start, end, searchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReportEntry), args.Error(1)
}

func (m *MockAPI) ListObjects(ctx context.Context, tgID int64) ([]domain.Object, error) {
	args := m.Called(tgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Object), args.Error(1)
}

func (m *MockAPI) ProfitReport(ctx context.Context, tgID, objectID int64, start, end time.Time) (*domain.ProfitReport, error) {
	args := m.Called(tgID, objectID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProfitReport), args.Error(1)
}

func (m *MockAPI) CreateObject(ctx context.Context, tgID int64, draft domain.ObjectDraft) (*domain.Object, error) {
	args := m.Called(tgID, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Object), args.Error(1)
}

func (m *MockAPI) DeleteObject(ctx context.Context, tgID, objectID int64) (string, error) {
	args := m.Called(tgID, objectID)
	return args.String(0), args.Error(1)
}
