package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/opsboard/ticket-health-backend/internal/core/domain"
	"github.com/opsboard/ticket-health-backend/internal/core/ports"
)

// MockTicketRepository is a mock implementation of ports.TicketRepository
type MockTicketRepository struct {
	mock.Mock
}

func NewMockTicketRepository() *MockTicketRepository {
	return &MockTicketRepository{}
}

func (m *MockTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	args := m.Called(ctx, ticket)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockTicketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockTicketRepository) GetByKey(ctx context.Context, key string) (*domain.Ticket, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockTicketRepository) Update(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	args := m.Called(ctx, ticket)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockTicketRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTicketRepository) List(ctx context.Context, query ports.TicketQuery) ([]*domain.Ticket, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Ticket), args.Error(1)
}

func (m *MockTicketRepository) DistinctValues(ctx context.Context) (*domain.FilterOptions, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FilterOptions), args.Error(1)
}

// MockFlagRepository is a mock implementation of ports.FlagRepository
type MockFlagRepository struct {
	mock.Mock
}

func NewMockFlagRepository() *MockFlagRepository {
	return &MockFlagRepository{}
}

func (m *MockFlagRepository) Create(ctx context.Context, flag *domain.Flag) (*domain.Flag, error) {
	args := m.Called(ctx, flag)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flag), args.Error(1)
}

func (m *MockFlagRepository) Get(ctx context.Context, userID, ticketID int64) (*domain.Flag, error) {
	args := m.Called(ctx, userID, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flag), args.Error(1)
}

func (m *MockFlagRepository) Delete(ctx context.Context, userID, ticketID int64) (bool, error) {
	args := m.Called(ctx, userID, ticketID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFlagRepository) ListFlaggedTickets(ctx context.Context, userID int64) ([]domain.FlaggedTicket, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FlaggedTicket), args.Error(1)
}

func (m *MockFlagRepository) Exists(ctx context.Context, userID, ticketID int64) (bool, error) {
	args := m.Called(ctx, userID, ticketID)
	return args.Bool(0), args.Error(1)
}

// MockUserRepository is a mock implementation of ports.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockEventBroadcaster is a mock implementation of ports.EventBroadcaster
type MockEventBroadcaster struct {
	mock.Mock
}

func NewMockEventBroadcaster() *MockEventBroadcaster {
	return &MockEventBroadcaster{}
}

func (m *MockEventBroadcaster) Broadcast(event domain.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

// MockDashboardService is a mock implementation of ports.DashboardService
type MockDashboardService struct {
	mock.Mock
}

func NewMockDashboardService() *MockDashboardService {
	return &MockDashboardService{}
}

func (m *MockDashboardService) GetOverview(ctx context.Context, spec domain.FilterSpec) (*domain.DashboardOverview, error) {
	args := m.Called(ctx, spec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardOverview), args.Error(1)
}

func (m *MockDashboardService) ListTickets(ctx context.Context, spec domain.FilterSpec) ([]*domain.Ticket, error) {
	args := m.Called(ctx, spec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Ticket), args.Error(1)
}

func (m *MockDashboardService) GetFilterOptions(ctx context.Context) (*domain.FilterOptions, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FilterOptions), args.Error(1)
}

// MockTicketService is a mock implementation of ports.TicketService
type MockTicketService struct {
	mock.Mock
}

func NewMockTicketService() *MockTicketService {
	return &MockTicketService{}
}

func (m *MockTicketService) CreateTicket(ctx context.Context, params domain.TicketParams) (*domain.Ticket, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockTicketService) GetTicket(ctx context.Context, id int64) (*domain.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockTicketService) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Ticket, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockTicketService) UpdateTicket(ctx context.Context, id int64, params ports.UpdateTicketParams) (*domain.Ticket, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockTicketService) AssignTicket(ctx context.Context, id int64, assignee string) (*domain.Ticket, error) {
	args := m.Called(ctx, id, assignee)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockTicketService) DeleteTicket(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockFlagService is a mock implementation of ports.FlagService
type MockFlagService struct {
	mock.Mock
}

func NewMockFlagService() *MockFlagService {
	return &MockFlagService{}
}

func (m *MockFlagService) FlagTicket(ctx context.Context, userID, ticketID int64, notes *string) (*domain.Flag, error) {
	args := m.Called(ctx, userID, ticketID, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flag), args.Error(1)
}

func (m *MockFlagService) UnflagTicket(ctx context.Context, userID, ticketID int64) (bool, error) {
	args := m.Called(ctx, userID, ticketID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFlagService) BulkUnflag(ctx context.Context, userID int64, ticketIDs []int64) (int, error) {
	args := m.Called(ctx, userID, ticketIDs)
	return args.Int(0), args.Error(1)
}

func (m *MockFlagService) ListFlagged(ctx context.Context, userID int64, spec domain.FilterSpec) ([]domain.FlaggedTicket, error) {
	args := m.Called(ctx, userID, spec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FlaggedTicket), args.Error(1)
}

func (m *MockFlagService) IsFlagged(ctx context.Context, userID, ticketID int64) (bool, error) {
	args := m.Called(ctx, userID, ticketID)
	return args.Bool(0), args.Error(1)
}

// MockExportService is a mock implementation of ports.ExportService
type MockExportService struct {
	mock.Mock
}

func NewMockExportService() *MockExportService {
	return &MockExportService{}
}

func (m *MockExportService) ExportFlaggedCSV(ctx context.Context, userID int64, spec domain.FilterSpec) ([]byte, error) {
	args := m.Called(ctx, userID, spec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockAuthService is a mock implementation of ports.AuthService
type MockAuthService struct {
	mock.Mock
}

func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthService) Register(ctx context.Context, username, displayName, password string) (*domain.User, error) {
	args := m.Called(ctx, username, displayName, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
