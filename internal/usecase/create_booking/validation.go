package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-BikeService/internal/domain"
)

// validateRequest валидирует форму запроса до запуска логики бронирования
// Некорректная форма - ошибка клиента, до ядра планирования не доходит
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.BikeID <= 0 {
		return fmt.Errorf("%w: bikeID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.TimeSlot.IsZero() {
		return fmt.Errorf("%w: timeSlot is required", ErrInvalidInput)
	}

	if err := req.TimeSlot.Validate(); err != nil {
		return fmt.Errorf("%w: invalid timeSlot format: %v", ErrInvalidInput, err)
	}

	if !req.ServiceType.IsValid() {
		return fmt.Errorf("%w: serviceType must be one of visit, pickup, home", ErrInvalidInput)
	}

	// Адрес обязателен, когда мастер или курьер выезжает к клиенту
	if req.ServiceType.RequiresAddress() {
		if req.Address == nil || *req.Address == "" {
			return fmt.Errorf("%w: address is required for %s service type", ErrInvalidInput, req.ServiceType)
		}
		if len(*req.Address) > domain.MaxAddressLength {
			return fmt.Errorf("%w: address is too long", ErrInvalidInput)
		}
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are too long", ErrInvalidInput)
	}

	return nil
}

// isGeneratedSlot возвращает true, если минута начала принадлежит
// последовательности генерируемых слотов рабочего дня:
// в пределах рабочих часов и выровнена по шагу
func isGeneratedSlot(minuteOfDay int, hours domain.BusinessHours) bool {
	openMinute := hours.OpenHour * 60
	closeMinute := hours.CloseHour * 60

	if minuteOfDay < openMinute || minuteOfDay >= closeMinute {
		return false
	}

	return (minuteOfDay-openMinute)%hours.SlotGranularityMinutes == 0
}

// hasOverlap проверяет пересечение запрошенного интервала с существующими
// неотменёнными бронированиями
//
// Пересечение интервалов [aStart, aEnd) и [bStart, bEnd): aStart < bEnd && bStart < aEnd.
// Граничное касание (одно заканчивается ровно там, где начинается другое)
// пересечением не считается. Длительность каждого существующего бронирования
// берётся из него самого - из услуги, зафиксированной при создании
func hasOverlap(startMinute, durationMinutes int, bookings []*domain.Booking) bool {
	endMinute := startMinute + durationMinutes

	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}

		bookingStart, err := booking.TimeSlot.MinuteOfDay()
		if err != nil {
			// Некорректное время в хранилище, пересечение не посчитать - пропускаем
			continue
		}
		bookingEnd := bookingStart + booking.DurationMinutes

		if bookingStart < endMinute && startMinute < bookingEnd {
			return true
		}
	}

	return false
}

// normalizeDate приводит дату к началу суток, не модифицируя аргумент
func normalizeDate(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}
