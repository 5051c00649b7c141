// Package mocks provides mock implementations of port interfaces for testing.
// The services depend on the port interfaces, so a mock with call tracking
// and error injection stands in for the real adapters.
package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/hemolink/donation-service/internal/core/domain"
	"github.com/hemolink/donation-service/internal/core/ports"
)

// MockRequestRepository implements ports.RequestRepository in memory.
type MockRequestRepository struct {
	mu sync.RWMutex

	requests map[string]*domain.Request

	// Call tracking for verification
	CreateCalls       []domain.Request
	UpdateStatusCalls []domain.Status
	OutboxPayloads    [][]byte

	// Error injection
	CreateError       error
	FindByIDError     error
	ListByPersonError error
	UpdateStatusError error
}

var _ ports.RequestRepository = (*MockRequestRepository)(nil)

func NewMockRequestRepository() *MockRequestRepository {
	return &MockRequestRepository{
		requests: make(map[string]*domain.Request),
	}
}

// SeedRequest adds a request for test setup.
func (m *MockRequestRepository) SeedRequest(req domain.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := req
	m.requests[req.ID] = &r
}

func (m *MockRequestRepository) Create(ctx context.Context, req domain.Request, outboxPayload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls = append(m.CreateCalls, req)
	m.OutboxPayloads = append(m.OutboxPayloads, outboxPayload)

	if m.CreateError != nil {
		return m.CreateError
	}

	r := req
	m.requests[req.ID] = &r
	return nil
}

func (m *MockRequestRepository) FindByID(ctx context.Context, id string) (*domain.Request, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.FindByIDError != nil {
		return nil, m.FindByIDError
	}

	req, ok := m.requests[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *req
	return &copied, nil
}

func (m *MockRequestRepository) ListByPerson(ctx context.Context, personID string, flow domain.Flow) ([]domain.Request, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.ListByPersonError != nil {
		return nil, m.ListByPersonError
	}

	var out []domain.Request
	for _, req := range m.requests {
		if req.Person.ID == personID && req.Flow == flow {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (m *MockRequestRepository) UpdateStatus(ctx context.Context, id string, status domain.Status, at time.Time, outboxPayload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UpdateStatusCalls = append(m.UpdateStatusCalls, status)
	m.OutboxPayloads = append(m.OutboxPayloads, outboxPayload)

	if m.UpdateStatusError != nil {
		return m.UpdateStatusError
	}

	req, ok := m.requests[id]
	if !ok {
		return domain.ErrNotFound
	}
	req.Status = status
	req.UpdatedAt = at
	return nil
}

// MockCampaignRepository implements ports.CampaignRepository in memory.
type MockCampaignRepository struct {
	mu sync.RWMutex

	campaigns []domain.Campaign

	ListCalls int

	ListError     error
	FindByIDError error
}

var _ ports.CampaignRepository = (*MockCampaignRepository)(nil)

func NewMockCampaignRepository(campaigns ...domain.Campaign) *MockCampaignRepository {
	return &MockCampaignRepository{campaigns: campaigns}
}

func (m *MockCampaignRepository) List(ctx context.Context) ([]domain.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ListCalls++
	if m.ListError != nil {
		return nil, m.ListError
	}
	return append([]domain.Campaign(nil), m.campaigns...), nil
}

func (m *MockCampaignRepository) FindByID(ctx context.Context, id string) (*domain.Campaign, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.FindByIDError != nil {
		return nil, m.FindByIDError
	}
	for _, c := range m.campaigns {
		if c.ID == id {
			copied := c
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

// MockDonorRepository implements ports.DonorRepository in memory.
type MockDonorRepository struct {
	mu sync.RWMutex

	users map[string]*domain.User

	FindByEmailCalls []string
	CreateDonorCalls []domain.Donor

	FindByEmailError error
	CreateDonorError error
}

var _ ports.DonorRepository = (*MockDonorRepository)(nil)

func NewMockDonorRepository() *MockDonorRepository {
	return &MockDonorRepository{
		users: make(map[string]*domain.User),
	}
}

func (m *MockDonorRepository) SeedUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.Email] = user
}

func (m *MockDonorRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	m.FindByEmailCalls = append(m.FindByEmailCalls, email)
	m.mu.Unlock()

	if m.FindByEmailError != nil {
		return nil, m.FindByEmailError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (m *MockDonorRepository) CreateDonor(ctx context.Context, donor domain.Donor, outboxPayload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateDonorCalls = append(m.CreateDonorCalls, donor)

	if m.CreateDonorError != nil {
		return m.CreateDonorError
	}

	m.users[donor.Email] = &donor.User
	return nil
}
