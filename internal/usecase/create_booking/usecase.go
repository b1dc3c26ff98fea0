package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BikeService/internal/domain"
	bikeRepo "github.com/m04kA/SMC-BikeService/internal/infra/storage/bike"
	bookingRepo "github.com/m04kA/SMC-BikeService/internal/infra/storage/booking"
	serviceRepo "github.com/m04kA/SMC-BikeService/internal/infra/storage/service"
)

// UseCase use case создания бронирования
type UseCase struct {
	bookingRepo BookingRepository
	serviceRepo ServiceRepository
	bikeRepo    BikeRepository
	txManager   TransactionManager
	slotCache   SlotCache
	hours       domain.BusinessHours
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	bikeRepo BikeRepository,
	txManager TransactionManager,
	slotCache SlotCache,
	hours domain.BusinessHours,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		serviceRepo: serviceRepo,
		bikeRepo:    bikeRepo,
		txManager:   txManager,
		slotCache:   slotCache,
		hours:       hours,
		logger:      logger,
	}
}

// Execute выполняет use case создания бронирования
//
// Проверка доступности и вставка выполняются единым атомарным блоком:
// сериализуемая транзакция блокирует бронирования дня (FOR UPDATE) и
// проверяет пересечение полного интервала услуги с каждым существующим
// бронированием. Из двух конкурентных попыток на пересекающиеся интервалы
// успешной будет ровно одна, вторая получит ErrSlotNotAvailable
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, bike=%d, service=%d, date=%s, slot=%s, type=%s",
		req.UserID, req.BikeID, req.ServiceID, req.Date.Format(domain.DateFormat), req.TimeSlot, req.ServiceType)

	// 1. Валидация формы запроса
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	date := normalizeDate(req.Date)

	// 2. Слот должен быть одним из генерируемых значений рабочего дня
	startMinute, err := req.TimeSlot.MinuteOfDay()
	if err != nil {
		uc.logger.Warn("CreateBooking: malformed time slot %q: %v", req.TimeSlot, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !isGeneratedSlot(startMinute, uc.hours) {
		uc.logger.Warn("CreateBooking: slot %s is outside business hours or misaligned", req.TimeSlot)
		return nil, ErrInvalidTimeSlot
	}

	// 3. Услуга должна существовать и быть активной
	svc, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !svc.IsActive {
		uc.logger.Warn("CreateBooking: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 4. Велосипед должен существовать и принадлежать пользователю
	bike, err := uc.bikeRepo.GetByID(ctx, req.BikeID)
	if err != nil {
		if errors.Is(err, bikeRepo.ErrBikeNotFound) {
			uc.logger.Warn("CreateBooking: bike id=%d not found", req.BikeID)
			return nil, ErrBikeNotFound
		}
		uc.logger.Error("CreateBooking: failed to get bike id=%d: %v", req.BikeID, err)
		return nil, fmt.Errorf("%w: failed to get bike: %v", ErrInternal, err)
	}
	if !bike.IsOwnedBy(req.UserID) {
		uc.logger.Warn("CreateBooking: bike id=%d is not owned by user id=%d", req.BikeID, req.UserID)
		return nil, ErrBikeNotOwned
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 5. Проверка занятости и вставка - единый атомарный блок
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Блокируем бронирования дня на время проверки
		bookings, err := uc.bookingRepo.GetByDate(txCtx, date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 5.2. Полная проверка пересечения интервалов: длительность запрошенной
		// услуги против длительности каждого существующего бронирования
		if hasOverlap(startMinute, svc.DurationMinutes, bookings) {
			uc.logger.Warn("CreateBooking: slot %s on %s overlaps an existing booking",
				req.TimeSlot, date.Format(domain.DateFormat))
			return ErrSlotNotAvailable
		}

		// 5.3. Создаем бронирование: длительность и цена услуги фиксируются
		// в записи, дальнейшие правки каталога занятость не меняют
		booking := &domain.Booking{
			UserID:          req.UserID,
			BikeID:          req.BikeID,
			ServiceID:       req.ServiceID,
			BookingDate:     date,
			TimeSlot:        req.TimeSlot,
			DurationMinutes: svc.DurationMinutes,
			ServiceType:     req.ServiceType,
			Address:         req.Address,
			Status:          domain.StatusPending,
			ServiceName:     svc.Name,
			TotalAmount:     svc.Price,
			Notes:           req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			// Страховка на уровне БД: проигравший конкурентную вставку
			// получает нарушение уникального индекса
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: unique index rejected slot %s on %s",
					req.TimeSlot, date.Format(domain.DateFormat))
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	// 6. Сбрасываем кэш слотов на дату (best effort)
	if err := uc.slotCache.InvalidateDate(ctx, date); err != nil {
		uc.logger.Warn("CreateBooking: failed to invalidate slot cache for date=%s: %v",
			date.Format(domain.DateFormat), err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return &Response{
		ID:              result.ID,
		UserID:          result.UserID,
		BikeID:          result.BikeID,
		ServiceID:       result.ServiceID,
		BookingDate:     result.BookingDate,
		TimeSlot:        result.TimeSlot,
		DurationMinutes: result.DurationMinutes,
		ServiceType:     string(result.ServiceType),
		Address:         result.Address,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		TotalAmount:     result.TotalAmount,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
