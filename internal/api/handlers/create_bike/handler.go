package create_bike

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BikeService/internal/api/handlers"
	"github.com/m04kA/SMC-BikeService/internal/api/middleware"
	"github.com/m04kA/SMC-BikeService/internal/service/bikes"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgDuplicatePlate     = "велосипед с таким номером уже зарегистрирован"
)

type Handler struct {
	service BikeService
	logger  Logger
}

func NewHandler(service BikeService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bikes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bikes - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBikeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bikes - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, bikes.ErrDuplicatePlate):
			h.logger.Warn("POST /bikes - Duplicate plate: user_id=%d, plate=%s", userID, req.NumberPlate)
			handlers.RespondConflict(w, msgDuplicatePlate)

		case errors.Is(err, bikes.ErrInvalidInput):
			h.logger.Warn("POST /bikes - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bikes - Failed to create bike: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bikes - Bike created successfully: bike_id=%d, user_id=%d", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
