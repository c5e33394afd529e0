// Package mocks implementa los puertos de repository con testify/mock para tests de casos de uso y handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/leads-crm-api/internal/domain/entity"
	"github.com/jhoicas/leads-crm-api/internal/domain/repository"
)

var (
	_ repository.LeadRepository        = (*LeadRepository)(nil)
	_ repository.ContactRepository     = (*ContactRepository)(nil)
	_ repository.InteractionRepository = (*InteractionRepository)(nil)
	_ repository.UserRepository        = (*UserRepository)(nil)
)

// LeadRepository mock de repository.LeadRepository.
type LeadRepository struct {
	mock.Mock
}

func (m *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	return m.Called(ctx, lead).Error(0)
}

func (m *LeadRepository) GetByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if lead, ok := args.Get(0).(*entity.Lead); ok {
		return lead, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *LeadRepository) List(ctx context.Context) ([]*entity.Lead, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]*entity.Lead); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *LeadRepository) Search(ctx context.Context, query string) ([]*entity.Lead, error) {
	args := m.Called(ctx, query)
	if list, ok := args.Get(0).([]*entity.Lead); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *LeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	return m.Called(ctx, lead).Error(0)
}

func (m *LeadRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *LeadRepository) AddCall(ctx context.Context, leadID string, call entity.CallScheduleEntry) error {
	return m.Called(ctx, leadID, call).Error(0)
}

func (m *LeadRepository) RemoveCall(ctx context.Context, leadID, callID string) error {
	return m.Called(ctx, leadID, callID).Error(0)
}

func (m *LeadRepository) UpdateCall(ctx context.Context, leadID string, call entity.CallScheduleEntry) error {
	return m.Called(ctx, leadID, call).Error(0)
}

func (m *LeadRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *LeadRepository) CountByStatus(ctx context.Context, status entity.LeadStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *LeadRepository) CountCallsByStatus(ctx context.Context, status entity.CallStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

// ContactRepository mock de repository.ContactRepository.
type ContactRepository struct {
	mock.Mock
}

func (m *ContactRepository) Create(ctx context.Context, contact *entity.Contact) error {
	return m.Called(ctx, contact).Error(0)
}

func (m *ContactRepository) GetByID(ctx context.Context, id string) (*entity.Contact, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*entity.Contact); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ContactRepository) List(ctx context.Context) ([]*entity.Contact, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]*entity.Contact); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ContactRepository) ListByLead(ctx context.Context, leadID string) ([]*entity.Contact, error) {
	args := m.Called(ctx, leadID)
	if list, ok := args.Get(0).([]*entity.Contact); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ContactRepository) Update(ctx context.Context, contact *entity.Contact) error {
	return m.Called(ctx, contact).Error(0)
}

func (m *ContactRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *ContactRepository) DeleteByLead(ctx context.Context, leadID string) (int64, error) {
	args := m.Called(ctx, leadID)
	return args.Get(0).(int64), args.Error(1)
}

// InteractionRepository mock de repository.InteractionRepository.
type InteractionRepository struct {
	mock.Mock
}

func (m *InteractionRepository) Create(ctx context.Context, in *entity.Interaction) error {
	return m.Called(ctx, in).Error(0)
}

func (m *InteractionRepository) GetByID(ctx context.Context, id string) (*entity.Interaction, error) {
	args := m.Called(ctx, id)
	if in, ok := args.Get(0).(*entity.Interaction); ok {
		return in, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *InteractionRepository) List(ctx context.Context, filter repository.InteractionFilter) ([]*entity.Interaction, error) {
	args := m.Called(ctx, filter)
	if list, ok := args.Get(0).([]*entity.Interaction); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *InteractionRepository) Update(ctx context.Context, in *entity.Interaction) error {
	return m.Called(ctx, in).Error(0)
}

func (m *InteractionRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *InteractionRepository) DeleteByLead(ctx context.Context, leadID string) (int64, error) {
	args := m.Called(ctx, leadID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *InteractionRepository) SummaryByLead(ctx context.Context) ([]repository.InteractionSummaryResult, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]repository.InteractionSummaryResult); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// UserRepository mock de repository.UserRepository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*entity.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*entity.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) List(ctx context.Context) ([]*entity.User, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]*entity.User); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
