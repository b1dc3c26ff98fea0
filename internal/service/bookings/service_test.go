package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BikeService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BikeService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-BikeService/internal/service/bookings/models"
	"github.com/m04kA/SMC-BikeService/pkg/ptr"
)

type fakeRepo struct {
	bookings map[int64]*domain.Booking
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeRepo) GetByUserID(_ context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range f.bookings {
		if b.UserID != userID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		copied := *b
		result = append(result, &copied)
	}
	return result, nil
}

func (f *fakeRepo) List(_ context.Context, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range f.bookings {
		if status != nil && b.Status != *status {
			continue
		}
		copied := *b
		result = append(result, &copied)
	}
	return result, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

func (f *fakeRepo) Cancel(_ context.Context, id int64) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = domain.StatusCancelled
	b.CancelledAt = ptr.Ptr(time.Now())
	return nil
}

type fakeCache struct {
	invalidated []time.Time
}

func (f *fakeCache) InvalidateDate(_ context.Context, date time.Time) error {
	f.invalidated = append(f.invalidated, date)
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func bookingDate() time.Time {
	return time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
}

func newTestService() (*Service, *fakeRepo, *fakeCache) {
	repo := &fakeRepo{
		bookings: map[int64]*domain.Booking{
			1: {ID: 1, UserID: 7, BookingDate: bookingDate(), TimeSlot: "10:00",
				DurationMinutes: 120, Status: domain.StatusPending},
			2: {ID: 2, UserID: 7, BookingDate: bookingDate(), TimeSlot: "14:00",
				DurationMinutes: 60, Status: domain.StatusCompleted},
			3: {ID: 3, UserID: 8, BookingDate: bookingDate(), TimeSlot: "15:00",
				DurationMinutes: 60, Status: domain.StatusConfirmed},
		},
	}
	cache := &fakeCache{}
	return NewService(repo, cache, noopLogger{}), repo, cache
}

func TestGetByID_AccessControl(t *testing.T) {
	svc, _, _ := newTestService()

	// Владелец видит своё бронирование
	resp, err := svc.GetByID(context.Background(), 1, 7, domain.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)

	// Чужое бронирование клиенту недоступно
	_, err = svc.GetByID(context.Background(), 3, 7, domain.RoleCustomer)
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Механик и админ видят любые
	_, err = svc.GetByID(context.Background(), 3, 7, domain.RoleMechanic)
	assert.NoError(t, err)
	_, err = svc.GetByID(context.Background(), 3, 7, domain.RoleAdmin)
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), 99, 7, domain.RoleCustomer)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetUserBookings_StatusFilter(t *testing.T) {
	svc, _, _ := newTestService()

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 7})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)

	resp, err = svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 7,
		Status: ptr.Ptr("pending"),
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "pending", resp.Bookings[0].Status)

	_, err = svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 7,
		Status: ptr.Ptr("bogus"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetAllBookings(t *testing.T) {
	svc, _, _ := newTestService()

	// Без фильтра возвращаются бронирования всех пользователей
	resp, err := svc.GetAllBookings(context.Background(), &models.GetAllBookingsRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 3)

	resp, err = svc.GetAllBookings(context.Background(), &models.GetAllBookingsRequest{
		Status: ptr.Ptr("confirmed"),
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(8), resp.Bookings[0].UserID)

	_, err = svc.GetAllBookings(context.Background(), &models.GetAllBookingsRequest{
		Status: ptr.Ptr("bogus"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancel_ReleasesSlots(t *testing.T) {
	svc, repo, cache := newTestService()

	resp, err := svc.Cancel(context.Background(), 1, 7, domain.RoleCustomer)
	require.NoError(t, err)

	assert.Equal(t, "cancelled", resp.Status)
	assert.NotNil(t, resp.CancelledAt)
	assert.False(t, repo.bookings[1].IsActive())

	// Кэш слотов на дату бронирования сброшен - слоты снова доступны
	require.Len(t, cache.invalidated, 1)
	assert.True(t, cache.invalidated[0].Equal(bookingDate()))
}

func TestCancel_Guards(t *testing.T) {
	svc, _, _ := newTestService()

	// Завершённое бронирование отменить нельзя
	_, err := svc.Cancel(context.Background(), 2, 7, domain.RoleCustomer)
	assert.ErrorIs(t, err, ErrCannotCancel)

	// Чужое бронирование отменить нельзя
	_, err = svc.Cancel(context.Background(), 3, 7, domain.RoleCustomer)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.Cancel(context.Background(), 99, 7, domain.RoleCustomer)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Cancel(context.Background(), 1, 7, domain.RoleCustomer)
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), 1, 7, domain.RoleCustomer)
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestUpdateStatus(t *testing.T) {
	svc, _, cache := newTestService()

	resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)

	// Неизвестный статус
	_, err = svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "bogus"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	// Терминальные статусы не меняются
	_, err = svc.UpdateStatus(context.Background(), 2, &models.UpdateStatusRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, ErrTerminalStatus)

	// Отмена через смену статуса освобождает слоты
	resp, err = svc.UpdateStatus(context.Background(), 3, &models.UpdateStatusRequest{Status: "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	assert.Len(t, cache.invalidated, 1)
}
