package create_bike

import (
	"context"

	"github.com/m04kA/SMC-BikeService/internal/service/bikes/models"
)

type BikeService interface {
	Create(ctx context.Context, req *models.CreateBikeRequest) (*models.BikeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
