package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-BikeService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	UserID    int64     // ID пользователя (для логирования, не влияет на результат)
	ServiceID int64     // ID услуги
	Date      time.Time // Дата для получения слотов (время суток игнорируется)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date      time.Time          // Дата, на которую запрашивались слоты
	ServiceID int64              // ID услуги
	Slots     []types.TimeString // Свободные слоты в порядке возрастания
}
