package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrBikeNotFound возвращается, когда велосипед не найден
	ErrBikeNotFound = errors.New("create_booking: bike not found")

	// ErrBikeNotOwned возвращается, когда велосипед принадлежит другому пользователю
	ErrBikeNotOwned = errors.New("create_booking: bike belongs to another user")

	// ErrSlotNotAvailable возвращается, когда запрошенный интервал пересекается
	// с существующим неотменённым бронированием
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidTimeSlot возвращается, когда время не является одним из
	// генерируемых слотов рабочего дня
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
