package get_user_bikes

import (
	"context"

	"github.com/m04kA/SMC-BikeService/internal/service/bikes/models"
)

type BikeService interface {
	GetUserBikes(ctx context.Context, userID int64) (*models.BikeListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
