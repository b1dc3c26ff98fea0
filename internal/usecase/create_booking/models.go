package create_booking

import (
	"time"

	"github.com/m04kA/SMC-BikeService/internal/domain"
	"github.com/m04kA/SMC-BikeService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID      int64              // ID пользователя (из заголовка гейтвея)
	BikeID      int64              // ID велосипеда
	ServiceID   int64              // ID услуги
	Date        time.Time          // Дата бронирования (время суток игнорируется)
	TimeSlot    types.TimeString   // Время начала слота (например, "10:00")
	ServiceType domain.ServiceType // visit / pickup / home
	Address     *string            // Адрес, обязателен для pickup и home
	Notes       *string            // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	UserID          int64
	BikeID          int64
	ServiceID       int64
	BookingDate     time.Time
	TimeSlot        types.TimeString
	DurationMinutes int
	ServiceType     string
	Address         *string
	Status          string

	// Денормализованные данные
	ServiceName string
	TotalAmount float64
	Notes       *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
