package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BikeService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BikeService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-BikeService/internal/service/bookings/models"
)

// Service сервис управления бронированиями после их создания:
// просмотр, отмена, смена статуса мастером
type Service struct {
	bookingRepo BookingRepository
	slotCache   SlotCache
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, slotCache SlotCache, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		slotCache:   slotCache,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Клиент видит только свои бронирования, механик и админ - любые
func (s *Service) GetByID(ctx context.Context, id, userID int64, role string) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !canAccess(booking, userID, role) {
		s.logger.Warn("GetByID: access denied for user=%d (role=%s) to booking id=%d", userID, role, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу, новые первыми
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	items, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(items), nil
}

// GetAllBookings получает бронирования всех пользователей (механик, админ)
// Опционально фильтрует по статусу, новые первыми
func (s *Service) GetAllBookings(ctx context.Context, req *models.GetAllBookingsRequest) (*models.BookingListResponse, error) {
	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetAllBookings: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	items, err := s.bookingRepo.List(ctx, domainStatus)
	if err != nil {
		s.logger.Error("GetAllBookings: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAllBookings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(items), nil
}

// Cancel отменяет бронирование
// Отмена разрешена владельцу (и механику с админом), пока бронирование
// не завершено. Отменённое бронирование сразу перестаёт занимать слоты
func (s *Service) Cancel(ctx context.Context, id, userID int64, role string) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !canAccess(booking, userID, role) {
		s.logger.Warn("Cancel: access denied for user=%d (role=%s) to booking id=%d", userID, role, id)
		return nil, ErrAccessDenied
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d in status %s cannot be cancelled", id, booking.Status)
		return nil, ErrCannotCancel
	}

	if err := s.bookingRepo.Cancel(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: failed to cancel booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Слоты освободились - сбрасываем кэш на дату (best effort)
	s.invalidateSlots(ctx, booking)

	s.logger.Info("Cancel: booking id=%d cancelled by user=%d", id, userID)

	updated, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Cancel: failed to reload booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(updated), nil
}

// UpdateStatus обновляет статус бронирования (механик, админ)
// Завершённые и отменённые бронирования менять нельзя
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, id)
		return nil, ErrInvalidStatus
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if booking.IsTerminal() {
		s.logger.Warn("UpdateStatus: booking id=%d in terminal status %s", id, booking.Status)
		return nil, ErrTerminalStatus
	}

	// Отмена через смену статуса идёт тем же путём, что и явная отмена:
	// с отметкой времени и освобождением слотов
	if newStatus == domain.StatusCancelled {
		if err := s.bookingRepo.Cancel(ctx, id); err != nil {
			s.logger.Error("UpdateStatus: failed to cancel booking id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}
		s.invalidateSlots(ctx, booking)
	} else {
		if err := s.bookingRepo.UpdateStatus(ctx, id, newStatus); err != nil {
			s.logger.Error("UpdateStatus: failed to update booking id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("UpdateStatus: booking id=%d moved to status %s", id, newStatus)

	updated, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("UpdateStatus: failed to reload booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(updated), nil
}

func (s *Service) invalidateSlots(ctx context.Context, booking *domain.Booking) {
	if err := s.slotCache.InvalidateDate(ctx, booking.BookingDate); err != nil {
		s.logger.Warn("failed to invalidate slot cache for date=%s: %v",
			booking.BookingDate.Format(domain.DateFormat), err)
	}
}

// canAccess возвращает true, если пользователь вправе работать с бронированием
func canAccess(booking *domain.Booking, userID int64, role string) bool {
	if role == domain.RoleAdmin || role == domain.RoleMechanic {
		return true
	}
	return booking.UserID == userID
}
