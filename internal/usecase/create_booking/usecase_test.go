package create_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BikeService/internal/domain"
	bikeRepo "github.com/m04kA/SMC-BikeService/internal/infra/storage/bike"
	serviceRepo "github.com/m04kA/SMC-BikeService/internal/infra/storage/service"
	"github.com/m04kA/SMC-BikeService/pkg/ptr"
)

// fakeBookingRepo потокобезопасное in-memory хранилище бронирований
type fakeBookingRepo struct {
	mu       sync.Mutex
	nextID   int64
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	stored := *booking
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.bookings = append(f.bookings, &stored)

	result := stored
	return &result, nil
}

func (f *fakeBookingRepo) GetByDate(_ context.Context, date time.Time) ([]*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*domain.Booking
	for _, b := range f.bookings {
		if b.BookingDate.Equal(date) && b.IsActive() {
			copied := *b
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeBookingRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bookings)
}

type fakeServiceRepo struct {
	services map[int64]*domain.Service
}

func (f *fakeServiceRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return svc, nil
}

type fakeBikeRepo struct {
	bikes map[int64]*domain.Bike
}

func (f *fakeBikeRepo) GetByID(_ context.Context, id int64) (*domain.Bike, error) {
	bike, ok := f.bikes[id]
	if !ok {
		return nil, bikeRepo.ErrBikeNotFound
	}
	return bike, nil
}

// fakeTxManager сериализует конкурентные транзакции мьютексом,
// имитируя сериализуемые транзакции БД
type fakeTxManager struct {
	mu sync.Mutex
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
}

type fakeSlotCache struct {
	mu          sync.Mutex
	invalidated int
}

func (f *fakeSlotCache) InvalidateDate(_ context.Context, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated++
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

var testHours = domain.BusinessHours{
	OpenHour:               9,
	CloseHour:              18,
	SlotGranularityMinutes: 60,
}

type testEnv struct {
	uc       *UseCase
	bookings *fakeBookingRepo
	cache    *fakeSlotCache
}

func newTestEnv() *testEnv {
	bookings := &fakeBookingRepo{}
	cache := &fakeSlotCache{}

	services := &fakeServiceRepo{
		services: map[int64]*domain.Service{
			1: {ID: 1, Name: "Полное ТО", Price: 4500, DurationMinutes: 120, IsActive: true},
			2: {ID: 2, Name: "Замена цепи", Price: 800, DurationMinutes: 60, IsActive: true},
			3: {ID: 3, Name: "Архивная услуга", Price: 100, DurationMinutes: 60, IsActive: false},
		},
	}
	bikes := &fakeBikeRepo{
		bikes: map[int64]*domain.Bike{
			10: {ID: 10, UserID: 7},
			11: {ID: 11, UserID: 8},
		},
	}

	uc := NewUseCase(bookings, services, bikes, &fakeTxManager{}, cache, testHours, noopLogger{})
	return &testEnv{uc: uc, bookings: bookings, cache: cache}
}

func testDate() time.Time {
	return time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
}

func validRequest() *Request {
	return &Request{
		UserID:      7,
		BikeID:      10,
		ServiceID:   1,
		Date:        testDate(),
		TimeSlot:    "10:00",
		ServiceType: domain.ServiceTypeVisit,
	}
}

func TestExecute_CreatesPendingBooking(t *testing.T) {
	env := newTestEnv()

	resp, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, int64(7), resp.UserID)

	// Параметры услуги фиксируются в бронировании при создании
	assert.Equal(t, 120, resp.DurationMinutes)
	assert.Equal(t, "Полное ТО", resp.ServiceName)
	assert.Equal(t, 4500.0, resp.TotalAmount)

	// Кэш слотов на дату сброшен
	assert.Equal(t, 1, env.cache.invalidated)
}

func TestExecute_RejectsOverlappingInterval(t *testing.T) {
	env := newTestEnv()

	// Первое бронирование: 10:00-12:00 (120 минут)
	_, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// 11:00 попадает внутрь занятого интервала
	req := validRequest()
	req.TimeSlot = "11:00"
	req.ServiceID = 2

	_, err = env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// Повтор того же слота тоже отклоняется
	_, err = env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_BoundaryTouchIsNotOverlap(t *testing.T) {
	env := newTestEnv()

	// 10:00-12:00
	_, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// 12:00 начинается ровно там, где закончилось предыдущее
	req := validRequest()
	req.TimeSlot = "12:00"
	req.ServiceID = 2

	_, err = env.uc.Execute(context.Background(), req)
	assert.NoError(t, err)

	// 09:00 на 60 минут заканчивается ровно к началу 10:00
	req = validRequest()
	req.TimeSlot = "09:00"
	req.ServiceID = 2

	_, err = env.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_LongServiceOverlapsForward(t *testing.T) {
	env := newTestEnv()

	// Часовое бронирование на 11:00
	req := validRequest()
	req.TimeSlot = "11:00"
	req.ServiceID = 2
	_, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Двухчасовая услуга с 10:00 накрыла бы 11:00
	_, err = env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_RejectsSlotOutsideBusinessHours(t *testing.T) {
	env := newTestEnv()

	req := validRequest()
	req.TimeSlot = "08:00"
	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)

	req = validRequest()
	req.TimeSlot = "18:00"
	_, err = env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)

	// Невыровненное по шагу время
	req = validRequest()
	req.TimeSlot = "10:30"
	_, err = env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_ServiceChecks(t *testing.T) {
	env := newTestEnv()

	req := validRequest()
	req.ServiceID = 99
	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	// Неактивная услуга недоступна для бронирования
	req = validRequest()
	req.ServiceID = 3
	_, err = env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_BikeChecks(t *testing.T) {
	env := newTestEnv()

	req := validRequest()
	req.BikeID = 99
	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrBikeNotFound)

	// Чужой велосипед
	req = validRequest()
	req.BikeID = 11
	_, err = env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrBikeNotOwned)
}

func TestExecute_AddressRequiredForPickupAndHome(t *testing.T) {
	env := newTestEnv()

	req := validRequest()
	req.ServiceType = domain.ServiceTypePickup
	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req.Address = ptr.Ptr("ул. Ленина, 1")
	_, err = env.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_ConcurrentRequestsAdmitExactlyOne(t *testing.T) {
	env := newTestEnv()

	const attempts = 8

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	// Все воркеры целятся в один и тот же слот
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.uc.Execute(context.Background(), validRequest())
		}(i)
	}
	wg.Wait()

	var succeeded, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrSlotNotAvailable):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, rejected)
	assert.Equal(t, 1, env.bookings.count())
}
