package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-BikeService/internal/domain"
	"github.com/m04kA/SMC-BikeService/pkg/types"
)

// generateTimeSlots генерирует канонический список всех слотов рабочего дня
// Чистая детерминированная функция: (close - open) слотов с фиксированным шагом,
// строго по возрастанию, каждый слот ровно один раз
//
// Корректность рабочих часов (open < close) гарантируется валидацией
// конфигурации при старте сервиса
func generateTimeSlots(hours domain.BusinessHours) []types.TimeString {
	step := hours.SlotGranularityMinutes
	slots := make([]types.TimeString, 0, hours.SlotCount())

	for minute := hours.OpenHour * 60; minute < hours.CloseHour*60; minute += step {
		slot, err := types.NewTimeStringFromMinutes(minute)
		if err != nil {
			// Недостижимо при валидной конфигурации: часы в пределах суток
			continue
		}
		slots = append(slots, slot)
	}

	return slots
}

// occupiedSlots вычисляет занятость дня: множество слотов, закрытых
// существующими бронированиями
//
// Каждое бронирование расширяется вперёд от своего начального слота на
// ceil(duration/granularity) позиций. Длительность берётся из самого
// бронирования (зафиксирована при создании), а не из запрошенной услуги.
// Хвост, выходящий за пределы рабочего дня, закрывает только существующие
// слоты - лишние минуты после закрытия отдельно не учитываются
func occupiedSlots(bookings []*domain.Booking, granularity int) map[types.TimeString]struct{} {
	occupied := make(map[types.TimeString]struct{})

	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}

		span := slotSpan(booking.DurationMinutes, granularity)
		for i := 0; i < span; i++ {
			slot, err := booking.TimeSlot.AddMinutes(i * granularity)
			if err != nil {
				// Слот за пределами суток - занимать нечего
				break
			}
			occupied[slot] = struct{}{}
		}
	}

	return occupied
}

// filterAvailable возвращает слоты из all, не попавшие в occupied,
// сохраняя порядок
func filterAvailable(all []types.TimeString, occupied map[types.TimeString]struct{}) []types.TimeString {
	available := make([]types.TimeString, 0, len(all))
	for _, slot := range all {
		if _, taken := occupied[slot]; !taken {
			available = append(available, slot)
		}
	}
	return available
}

// slotSpan возвращает количество слотов, занимаемых услугой указанной длительности
func slotSpan(durationMinutes, granularity int) int {
	if durationMinutes <= 0 || granularity <= 0 {
		return 0
	}
	return (durationMinutes + granularity - 1) / granularity
}

// normalizeDate приводит дату к началу суток, не модифицируя аргумент
func normalizeDate(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}
