package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BikeService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-BikeService/internal/infra/storage/service"
	"github.com/m04kA/SMC-BikeService/pkg/types"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
	calls    int
}

func (f *fakeBookingRepo) GetByDate(_ context.Context, _ time.Time) ([]*domain.Booking, error) {
	f.calls++
	return f.bookings, f.err
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

type fakeSlotCache struct {
	cached   []types.TimeString
	hit      bool
	stored   []types.TimeString
	setCalls int
}

func (f *fakeSlotCache) Get(_ context.Context, _ time.Time) ([]types.TimeString, bool) {
	return f.cached, f.hit
}

func (f *fakeSlotCache) Set(_ context.Context, _ time.Time, slots []types.TimeString) error {
	f.setCalls++
	f.stored = slots
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newTestUseCase(bookings *fakeBookingRepo, cache *fakeSlotCache) *UseCase {
	services := &fakeServiceRepo{
		services: map[int64]*domain.Service{
			1: {ID: 1, Name: "Полное ТО", DurationMinutes: 120, IsActive: true},
			2: {ID: 2, Name: "Снятая с каталога", DurationMinutes: 60, IsActive: false},
		},
	}
	return NewUseCase(bookings, services, cache, workDay, noopLogger{})
}

func testDate() time.Time {
	return time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
}

func TestExecute_EmptyDayReturnsAllSlots(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeSlotCache{})

	resp, err := uc.Execute(context.Background(), &Request{UserID: 7, ServiceID: 1, Date: testDate()})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 9)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0])
	assert.Equal(t, types.TimeString("17:00"), resp.Slots[8])
}

func TestExecute_BookingOccupiesItsFullDuration(t *testing.T) {
	// Бронирование 10:00 на 120 минут закрывает 10:00 и 11:00
	bookings := &fakeBookingRepo{
		bookings: []*domain.Booking{
			{TimeSlot: "10:00", DurationMinutes: 120, Status: domain.StatusPending},
		},
	}
	uc := newTestUseCase(bookings, &fakeSlotCache{})

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate()})
	require.NoError(t, err)

	assert.NotContains(t, resp.Slots, types.TimeString("10:00"))
	assert.NotContains(t, resp.Slots, types.TimeString("11:00"))
	assert.Contains(t, resp.Slots, types.TimeString("09:00"))
	assert.Contains(t, resp.Slots, types.TimeString("12:00"))
	assert.Len(t, resp.Slots, 7)
}

func TestExecute_CancelledBookingFreesSlots(t *testing.T) {
	bookings := &fakeBookingRepo{
		bookings: []*domain.Booking{
			{TimeSlot: "10:00", DurationMinutes: 120, Status: domain.StatusCancelled},
		},
	}
	uc := newTestUseCase(bookings, &fakeSlotCache{})

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate()})
	require.NoError(t, err)

	// Отменённое бронирование занятость не создаёт
	assert.Contains(t, resp.Slots, types.TimeString("10:00"))
	assert.Contains(t, resp.Slots, types.TimeString("11:00"))
	assert.Len(t, resp.Slots, 9)
}

func TestExecute_OccupancyDoesNotDependOnRequestedService(t *testing.T) {
	// Одна и та же занятость при запросе с разными услугами
	bookings := &fakeBookingRepo{
		bookings: []*domain.Booking{
			{TimeSlot: "09:00", DurationMinutes: 90, Status: domain.StatusConfirmed},
		},
	}
	uc := newTestUseCase(bookings, &fakeSlotCache{})

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate()})
	require.NoError(t, err)

	// 90 минут закрывают 09:00 и 10:00 независимо от запрошенной услуги
	assert.NotContains(t, resp.Slots, types.TimeString("09:00"))
	assert.NotContains(t, resp.Slots, types.TimeString("10:00"))
	assert.Contains(t, resp.Slots, types.TimeString("11:00"))
}

func TestExecute_ServiceNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeSlotCache{})

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 99, Date: testDate()})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InactiveServiceTreatedAsMissing(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeSlotCache{})

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 2, Date: testDate()})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeSlotCache{})

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 0, Date: testDate()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ServiceID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_CacheHitSkipsRepository(t *testing.T) {
	bookings := &fakeBookingRepo{}
	cache := &fakeSlotCache{
		cached: []types.TimeString{"09:00", "12:00"},
		hit:    true,
	}
	uc := newTestUseCase(bookings, cache)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate()})
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"09:00", "12:00"}, resp.Slots)
	assert.Zero(t, bookings.calls)
	assert.Zero(t, cache.setCalls)
}

func TestExecute_CacheMissStoresResult(t *testing.T) {
	cache := &fakeSlotCache{}
	uc := newTestUseCase(&fakeBookingRepo{}, cache)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: testDate()})
	require.NoError(t, err)

	assert.Equal(t, 1, cache.setCalls)
	assert.Equal(t, resp.Slots, cache.stored)
}
