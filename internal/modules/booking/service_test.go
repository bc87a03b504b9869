package booking

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"taxibook/internal/domain"
	"taxibook/internal/repository"
)

// Mock repositories

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) CreateWithHold(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if args.Error(0) == nil && b != nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetForCustomer(ctx context.Context, bookingID, customerID int64) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) DeleteWithRelease(ctx context.Context, bookingID, customerID int64) error {
	args := m.Called(ctx, bookingID, customerID)
	return args.Error(0)
}

func (m *MockBookingRepository) SetPaymentStatus(ctx context.Context, bookingID int64, status domain.PaymentStatus) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type MockDriverRepository struct {
	mock.Mock
}

func (m *MockDriverRepository) GetByTaxiID(ctx context.Context, taxiID int64) (*domain.Driver, error) {
	args := m.Called(ctx, taxiID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Driver), args.Error(1)
}

func TestService_Create_Success(t *testing.T) {
	bookings := new(MockBookingRepository)
	drivers := new(MockDriverRepository)

	bookings.On("CreateWithHold", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)
	drivers.On("GetByTaxiID", mock.Anything, int64(3)).Return(&domain.Driver{
		ID: 1, Name: "Askar", Phone: "+7 777 000 11 22", TaxiID: 3,
	}, nil)

	svc := NewService(bookings, drivers, nil)

	result, err := svc.Create(context.Background(), 42, CreateBookingRequest{
		TaxiID:      3,
		Source:      "Airport",
		Destination: "Downtown",
		DistanceKM:  10,
	})

	require.NoError(t, err)
	assert.Equal(t, 120.0, result.Fare)
	assert.Equal(t, "Askar", result.DriverName)
	assert.Equal(t, "+7 777 000 11 22", result.DriverPhone)

	created := bookings.Calls[0].Arguments.Get(1).(*domain.Booking)
	assert.Equal(t, int64(42), created.CustomerID)
	assert.Equal(t, domain.PaymentPending, created.PaymentStatus)
	bookings.AssertExpectations(t)
}

func TestService_Create_NoDriverAssigned(t *testing.T) {
	bookings := new(MockBookingRepository)
	drivers := new(MockDriverRepository)

	bookings.On("CreateWithHold", mock.Anything, mock.Anything).Return(nil)
	drivers.On("GetByTaxiID", mock.Anything, int64(3)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(bookings, drivers, nil)

	result, err := svc.Create(context.Background(), 42, CreateBookingRequest{
		TaxiID: 3, Source: "A", Destination: "B", DistanceKM: 2.5,
	})

	require.NoError(t, err)
	assert.Equal(t, 30.0, result.Fare)
	assert.Equal(t, "N/A", result.DriverName)
	assert.Equal(t, "N/A", result.DriverPhone)
}

func TestService_Create_DriverLookupError(t *testing.T) {
	bookings := new(MockBookingRepository)
	drivers := new(MockDriverRepository)

	bookings.On("CreateWithHold", mock.Anything, mock.Anything).Return(nil)
	drivers.On("GetByTaxiID", mock.Anything, int64(3)).Return(nil, errors.New("connection reset"))

	svc := NewService(bookings, drivers, nil)

	// The booking is already committed when the driver lookup runs; a
	// broken lookup must not fail the create.
	result, err := svc.Create(context.Background(), 42, CreateBookingRequest{
		TaxiID: 3, Source: "A", Destination: "B", DistanceKM: 2.5,
	})

	require.NoError(t, err)
	assert.Equal(t, "N/A", result.DriverName)
	assert.Equal(t, "N/A", result.DriverPhone)
}

func TestService_Create_TaxiTaken(t *testing.T) {
	bookings := new(MockBookingRepository)
	drivers := new(MockDriverRepository)

	bookings.On("CreateWithHold", mock.Anything, mock.Anything).Return(repository.ErrTaxiNotAvailable)

	svc := NewService(bookings, drivers, nil)

	_, err := svc.Create(context.Background(), 42, CreateBookingRequest{
		TaxiID: 3, Source: "A", Destination: "B", DistanceKM: 5,
	})

	assert.ErrorIs(t, err, ErrTaxiUnavailable)
	drivers.AssertNotCalled(t, "GetByTaxiID")
}

func TestService_Create_InvalidDistance(t *testing.T) {
	bookings := new(MockBookingRepository)
	svc := NewService(bookings, new(MockDriverRepository), nil)

	_, err := svc.Create(context.Background(), 42, CreateBookingRequest{
		TaxiID: 3, Source: "A", Destination: "B", DistanceKM: -4,
	})

	assert.ErrorIs(t, err, ErrValidation)
	bookings.AssertNotCalled(t, "CreateWithHold")
}

func TestService_Get_WrongOwner(t *testing.T) {
	bookings := new(MockBookingRepository)
	bookings.On("GetForCustomer", mock.Anything, int64(7), int64(42)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(bookings, new(MockDriverRepository), nil)

	_, err := svc.Get(context.Background(), 7, 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Update_RecomputesFare(t *testing.T) {
	bookings := new(MockBookingRepository)
	bookings.On("Update", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)

	svc := NewService(bookings, new(MockDriverRepository), nil)

	fare, err := svc.Update(context.Background(), 7, 42, UpdateBookingRequest{
		TaxiID: 3, Source: "A", Destination: "B",
		DistanceKM: 10, PaymentStatus: "paid",
	})

	require.NoError(t, err)
	assert.Equal(t, 120.0, fare)

	updated := bookings.Calls[0].Arguments.Get(1).(*domain.Booking)
	assert.Equal(t, int64(7), updated.ID)
	assert.Equal(t, int64(42), updated.CustomerID)
	assert.Equal(t, domain.PaymentPaid, updated.PaymentStatus)
	assert.Equal(t, 120.0, updated.Fare)
}

func TestService_Update_NotFound(t *testing.T) {
	bookings := new(MockBookingRepository)
	bookings.On("Update", mock.Anything, mock.Anything).Return(gorm.ErrRecordNotFound)

	svc := NewService(bookings, new(MockDriverRepository), nil)

	_, err := svc.Update(context.Background(), 7, 42, UpdateBookingRequest{
		TaxiID: 3, Source: "A", Destination: "B",
		DistanceKM: 10, PaymentStatus: "pending",
	})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Update_BadPaymentStatus(t *testing.T) {
	bookings := new(MockBookingRepository)
	svc := NewService(bookings, new(MockDriverRepository), nil)

	_, err := svc.Update(context.Background(), 7, 42, UpdateBookingRequest{
		TaxiID: 3, Source: "A", Destination: "B",
		DistanceKM: 10, PaymentStatus: "refunded",
	})

	assert.ErrorIs(t, err, ErrValidation)
	bookings.AssertNotCalled(t, "Update")
}

func TestService_Cancel_NotFound(t *testing.T) {
	bookings := new(MockBookingRepository)
	bookings.On("DeleteWithRelease", mock.Anything, int64(7), int64(42)).Return(gorm.ErrRecordNotFound)

	svc := NewService(bookings, new(MockDriverRepository), nil)

	err := svc.Cancel(context.Background(), 7, 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_DriverReportPayment(t *testing.T) {
	bookings := new(MockBookingRepository)
	bookings.On("SetPaymentStatus", mock.Anything, int64(7), domain.PaymentPaid).Return(&domain.Booking{
		ID: 7, TaxiID: 3, PaymentStatus: domain.PaymentPaid,
	}, nil)

	svc := NewService(bookings, new(MockDriverRepository), nil)

	result, err := svc.DriverReportPayment(context.Background(), DriverUpdateRequest{
		DriverName: "Askar", BookingID: 7, PaymentStatus: "paid",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(3), result.TaxiID)
	assert.Equal(t, "paid", result.NewStatus)
}

func TestService_DriverReportPayment_NonTerminal(t *testing.T) {
	bookings := new(MockBookingRepository)
	svc := NewService(bookings, new(MockDriverRepository), nil)

	// Reopening to pending would leave an open booking on a released
	// taxi, so drivers may only report terminal statuses.
	_, err := svc.DriverReportPayment(context.Background(), DriverUpdateRequest{
		DriverName: "Askar", BookingID: 7, PaymentStatus: "pending",
	})

	assert.ErrorIs(t, err, ErrValidation)
	bookings.AssertNotCalled(t, "SetPaymentStatus")
}

func TestService_DriverReportPayment_UnknownBooking(t *testing.T) {
	bookings := new(MockBookingRepository)
	bookings.On("SetPaymentStatus", mock.Anything, int64(404), domain.PaymentPaid).Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(bookings, new(MockDriverRepository), nil)

	_, err := svc.DriverReportPayment(context.Background(), DriverUpdateRequest{
		DriverName: "Askar", BookingID: 404, PaymentStatus: "paid",
	})

	assert.ErrorIs(t, err, ErrNotFound)
}

// fakeBookingRepo implements the same compare-and-swap semantics as the
// real repository, guarded by a mutex, so the concurrent create test can
// verify that the service surfaces exactly one winner.
type fakeBookingRepo struct {
	mu     sync.Mutex
	nextID int64
	taxis  map[int64]domain.TaxiStatus
	rows   map[int64]domain.Booking
}

func newFakeBookingRepo(taxiIDs ...int64) *fakeBookingRepo {
	taxis := make(map[int64]domain.TaxiStatus, len(taxiIDs))
	for _, id := range taxiIDs {
		taxis[id] = domain.TaxiAvailable
	}
	return &fakeBookingRepo{taxis: taxis, rows: map[int64]domain.Booking{}}
}

func (f *fakeBookingRepo) CreateWithHold(_ context.Context, b *domain.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.taxis[b.TaxiID] != domain.TaxiAvailable {
		return repository.ErrTaxiNotAvailable
	}
	f.taxis[b.TaxiID] = domain.TaxiUnavailable

	f.nextID++
	b.ID = f.nextID
	f.rows[b.ID] = *b
	return nil
}

func (f *fakeBookingRepo) GetForCustomer(_ context.Context, bookingID, customerID int64) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.rows[bookingID]
	if !ok || b.CustomerID != customerID {
		return nil, gorm.ErrRecordNotFound
	}
	return &b, nil
}

func (f *fakeBookingRepo) ListByCustomer(_ context.Context, _ int64) ([]domain.Booking, error) {
	return nil, nil
}

func (f *fakeBookingRepo) Update(_ context.Context, _ *domain.Booking) error { return nil }

func (f *fakeBookingRepo) DeleteWithRelease(_ context.Context, _, _ int64) error { return nil }

func (f *fakeBookingRepo) SetPaymentStatus(_ context.Context, _ int64, _ domain.PaymentStatus) (*domain.Booking, error) {
	return nil, gorm.ErrRecordNotFound
}

type noDrivers struct{}

func (noDrivers) GetByTaxiID(_ context.Context, _ int64) (*domain.Driver, error) {
	return nil, gorm.ErrRecordNotFound
}

func TestService_Create_ConcurrentSingleWinner(t *testing.T) {
	const workers = 16

	repo := newFakeBookingRepo(3)
	svc := NewService(repo, noDrivers{}, nil)

	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(customerID int64) {
			defer wg.Done()
			_, err := svc.Create(context.Background(), customerID, CreateBookingRequest{
				TaxiID: 3, Source: "A", Destination: "B", DistanceKM: 1,
			})
			errs <- err
		}(int64(i + 1))
	}
	wg.Wait()
	close(errs)

	var won, lost int
	for err := range errs {
		switch {
		case err == nil:
			won++
		case assert.ErrorIs(t, err, ErrTaxiUnavailable):
			lost++
		}
	}

	assert.Equal(t, 1, won, "exactly one create must win the taxi")
	assert.Equal(t, workers-1, lost)
	assert.Equal(t, domain.TaxiUnavailable, repo.taxis[3])
	assert.Len(t, repo.rows, 1)
}
