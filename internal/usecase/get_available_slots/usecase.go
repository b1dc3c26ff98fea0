package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BikeService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-BikeService/internal/infra/storage/service"
)

// UseCase use case получения доступных слотов для бронирования
type UseCase struct {
	bookingRepo BookingRepository
	serviceRepo ServiceRepository
	slotCache   SlotCache
	hours       domain.BusinessHours
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	slotCache SlotCache,
	hours domain.BusinessHours,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		serviceRepo: serviceRepo,
		slotCache:   slotCache,
		hours:       hours,
		logger:      logger,
	}
}

// Execute вычисляет свободные слоты на дату
//
// Алгоритм: генерируем полный список слотов дня, накладываем занятость
// существующих неотменённых бронирований (каждое расширяется по своей
// длительности) и возвращаем разность с сохранением порядка
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d, service=%d, date=%s",
		req.UserID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date := normalizeDate(req.Date)

	// 2. Услуга должна существовать и быть активной
	svc, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !svc.IsActive {
		uc.logger.Warn("GetAvailableSlots: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 3. Пробуем кэш: занятость не зависит от запрошенной услуги
	if cached, ok := uc.slotCache.Get(ctx, date); ok {
		uc.logger.Info("GetAvailableSlots: cache hit for date=%s, slots=%d",
			date.Format(domain.DateFormat), len(cached))
		return &Response{Date: date, ServiceID: req.ServiceID, Slots: cached}, nil
	}

	// 4. Получаем все неотменённые бронирования на дату
	bookings, err := uc.bookingRepo.GetByDate(ctx, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 5. Разность: все слоты дня минус занятость
	allSlots := generateTimeSlots(uc.hours)
	occupied := occupiedSlots(bookings, uc.hours.SlotGranularityMinutes)
	available := filterAvailable(allSlots, occupied)

	// 6. Кэшируем результат (best effort, ошибка не фатальна)
	if err := uc.slotCache.Set(ctx, date, available); err != nil {
		uc.logger.Warn("GetAvailableSlots: failed to cache slots for date=%s: %v",
			date.Format(domain.DateFormat), err)
	}

	uc.logger.Info("GetAvailableSlots: %d of %d slots available for date=%s",
		len(available), len(allSlots), date.Format(domain.DateFormat))

	return &Response{
		Date:      date,
		ServiceID: req.ServiceID,
		Slots:     available,
	}, nil
}
