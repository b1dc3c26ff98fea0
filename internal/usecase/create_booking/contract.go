package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BikeService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	// GetByDate получает все неотменённые бронирования на дату
	// Внутри транзакции блокирует строки (FOR UPDATE)
	GetByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
}

// ServiceRepository интерфейс репозитория каталога услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// BikeRepository интерфейс репозитория велосипедов
type BikeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Bike, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// SlotCache кэш слотов; после успешного создания бронирования кэш на дату сбрасывается
type SlotCache interface {
	InvalidateDate(ctx context.Context, date time.Time) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
