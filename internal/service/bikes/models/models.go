package models

import (
	"time"

	"github.com/m04kA/SMC-BikeService/internal/domain"
)

// Request модели

// CreateBikeRequest запрос на регистрацию велосипеда
type CreateBikeRequest struct {
	UserID      int64  `json:"userId"`
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	NumberPlate string `json:"numberPlate"`
}

// Response модели

// BikeResponse ответ с данными велосипеда
type BikeResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	Brand       string    `json:"brand"`
	Model       string    `json:"model"`
	NumberPlate string    `json:"numberPlate"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BikeListResponse ответ со списком велосипедов
type BikeListResponse struct {
	Bikes []BikeResponse `json:"bikes"`
}

// Методы конвертации

// FromDomainBike конвертирует domain модель в DTO
func FromDomainBike(b *domain.Bike) *BikeResponse {
	if b == nil {
		return nil
	}

	return &BikeResponse{
		ID:          b.ID,
		UserID:      b.UserID,
		Brand:       b.Brand,
		Model:       b.Model,
		NumberPlate: b.NumberPlate,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// FromDomainBikeList конвертирует список domain моделей в DTO
func FromDomainBikeList(bikes []*domain.Bike) *BikeListResponse {
	resp := &BikeListResponse{
		Bikes: make([]BikeResponse, 0, len(bikes)),
	}

	for _, bike := range bikes {
		if bikeResp := FromDomainBike(bike); bikeResp != nil {
			resp.Bikes = append(resp.Bikes, *bikeResp)
		}
	}

	return resp
}
