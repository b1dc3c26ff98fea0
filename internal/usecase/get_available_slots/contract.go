package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BikeService/internal/domain"
	"github.com/m04kA/SMC-BikeService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetByDate получает все неотменённые бронирования на дату
	GetByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
}

// ServiceRepository интерфейс репозитория каталога услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// SlotCache кэш списков доступных слотов (путь чтения, устаревание допустимо)
type SlotCache interface {
	Get(ctx context.Context, date time.Time) ([]types.TimeString, bool)
	Set(ctx context.Context, date time.Time, slots []types.TimeString) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
