package admin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"taxibook/internal/domain"
	"taxibook/internal/repository"
)

type MockTaxiRepository struct {
	mock.Mock
}

func (m *MockTaxiRepository) Create(ctx context.Context, t *domain.Taxi) error {
	args := m.Called(ctx, t)
	if args.Error(0) == nil && t != nil {
		t.ID = 7
	}
	return args.Error(0)
}

func (m *MockTaxiRepository) Update(ctx context.Context, t *domain.Taxi) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTaxiRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockTaxiRepository) GetByID(ctx context.Context, id int64) (*domain.Taxi, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Taxi), args.Error(1)
}

func (m *MockTaxiRepository) List(ctx context.Context) ([]domain.Taxi, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Taxi), args.Error(1)
}

type MockDriverRepository struct {
	mock.Mock
}

func (m *MockDriverRepository) Create(ctx context.Context, d *domain.Driver) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDriverRepository) Update(ctx context.Context, d *domain.Driver) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDriverRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockDriverRepository) ListWithTaxi(ctx context.Context) ([]repository.DriverWithTaxi, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.DriverWithTaxi), args.Error(1)
}

type stubIssuer struct{}

func (stubIssuer) GenerateAdminToken() (string, error) {
	return "admin-token", nil
}

func newTestService(taxis *MockTaxiRepository, drivers *MockDriverRepository) *Service {
	return NewService("admin", "hunter2", stubIssuer{}, taxis, drivers, nil)
}

func TestService_Login(t *testing.T) {
	svc := newTestService(nil, nil)

	token, err := svc.Login(LoginRequest{Username: "admin", Password: "hunter2"})
	require.NoError(t, err)
	assert.Equal(t, "admin-token", token)

	_, err = svc.Login(LoginRequest{Username: "admin", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(LoginRequest{Username: "root", Password: "hunter2"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_AddTaxi_DefaultsStatus(t *testing.T) {
	taxis := new(MockTaxiRepository)
	taxis.On("Create", mock.Anything, mock.AnythingOfType("*domain.Taxi")).Return(nil)

	svc := newTestService(taxis, nil)

	created, err := svc.AddTaxi(context.Background(), TaxiRequest{Model: "Toyota Camry", Capacity: 4})
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)
	assert.Equal(t, domain.TaxiAvailable, created.Status)
}

func TestService_AddTaxi_BadStatus(t *testing.T) {
	svc := newTestService(new(MockTaxiRepository), nil)

	_, err := svc.AddTaxi(context.Background(), TaxiRequest{Model: "Kia", Capacity: 4, Status: "broken"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_UpdateTaxi_NotFound(t *testing.T) {
	taxis := new(MockTaxiRepository)
	taxis.On("Update", mock.Anything, mock.AnythingOfType("*domain.Taxi")).Return(gorm.ErrRecordNotFound)

	svc := newTestService(taxis, nil)

	_, err := svc.UpdateTaxi(context.Background(), 99, TaxiRequest{Model: "Kia", Capacity: 4, Status: "available"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_AddDriver_RequiresTaxi(t *testing.T) {
	taxis := new(MockTaxiRepository)
	taxis.On("GetByID", mock.Anything, int64(3)).Return(nil, gorm.ErrRecordNotFound)

	drivers := new(MockDriverRepository)

	svc := newTestService(taxis, drivers)

	_, err := svc.AddDriver(context.Background(), DriverRequest{Name: "Bek", Phone: "+7 701", TaxiID: 3})
	assert.ErrorIs(t, err, ErrNotFound)
	drivers.AssertNotCalled(t, "Create")
}

func TestService_AddDriver_Success(t *testing.T) {
	taxis := new(MockTaxiRepository)
	taxis.On("GetByID", mock.Anything, int64(3)).Return(&domain.Taxi{ID: 3}, nil)

	drivers := new(MockDriverRepository)
	drivers.On("Create", mock.Anything, mock.AnythingOfType("*domain.Driver")).Return(nil)

	svc := newTestService(taxis, drivers)

	d, err := svc.AddDriver(context.Background(), DriverRequest{Name: " Bek ", Phone: "+7 701", TaxiID: 3})
	require.NoError(t, err)
	assert.Equal(t, "Bek", d.Name)
	assert.Equal(t, int64(3), d.TaxiID)
	drivers.AssertExpectations(t)
}
