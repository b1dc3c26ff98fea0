package get_all_bookings

import (
	"github.com/m04kA/SMC-BikeService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// Значение status=all равнозначно отсутствию фильтра
func ToServiceRequest(statusStr string) *models.GetAllBookingsRequest {
	req := &models.GetAllBookingsRequest{}

	if statusStr != "" && statusStr != "all" {
		req.Status = &statusStr
	}

	return req
}
