package create_bike

import (
	"github.com/m04kA/SMC-BikeService/internal/service/bikes/models"
)

// CreateBikeRequest HTTP request model
// Владелец берётся из контекста, а не из тела запроса
type CreateBikeRequest struct {
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	NumberPlate string `json:"numberPlate"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateBikeRequest) ToServiceRequest(userID int64) *models.CreateBikeRequest {
	return &models.CreateBikeRequest{
		UserID:      userID,
		Brand:       r.Brand,
		Model:       r.Model,
		NumberPlate: r.NumberPlate,
	}
}
