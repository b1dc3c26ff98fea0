package bikes

import (
	"context"

	"github.com/m04kA/SMC-BikeService/internal/domain"
)

// BikeRepository интерфейс репозитория велосипедов
type BikeRepository interface {
	Create(ctx context.Context, bike *domain.Bike) (*domain.Bike, error)
	GetByID(ctx context.Context, id int64) (*domain.Bike, error)
	GetByUserID(ctx context.Context, userID int64) ([]*domain.Bike, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
