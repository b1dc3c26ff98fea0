package catalog

import (
	"context"

	"github.com/m04kA/SMC-BikeService/internal/domain"
)

// ServiceRepository интерфейс репозитория каталога услуг
type ServiceRepository interface {
	Create(ctx context.Context, svc *domain.Service) (*domain.Service, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	ListActive(ctx context.Context, category *string) ([]*domain.Service, error)
	Update(ctx context.Context, svc *domain.Service) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
