package create_booking

import (
	"time"

	"github.com/m04kA/SMC-BikeService/internal/domain"
	createBooking "github.com/m04kA/SMC-BikeService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-BikeService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	BikeID      int64   `json:"bikeId"`
	ServiceID   int64   `json:"serviceId"`
	BookingDate string  `json:"bookingDate"` // "2026-09-15"
	TimeSlot    string  `json:"timeSlot"`    // "10:00"
	ServiceType string  `json:"serviceType"` // visit / pickup / home
	Address     *string `json:"address,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	UserID          int64   `json:"userId"`
	BikeID          int64   `json:"bikeId"`
	ServiceID       int64   `json:"serviceId"`
	BookingDate     string  `json:"bookingDate"`
	TimeSlot        string  `json:"timeSlot"`
	DurationMinutes int     `json:"durationMinutes"`
	ServiceType     string  `json:"serviceType"`
	Address         *string `json:"address,omitempty"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	TotalAmount     float64 `json:"totalAmount"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Идентификатор пользователя берётся из контекста, а не из тела
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	timeSlot, err := types.NewTimeStringFromString(r.TimeSlot)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:      userID,
		BikeID:      r.BikeID,
		ServiceID:   r.ServiceID,
		Date:        bookingDate,
		TimeSlot:    timeSlot,
		ServiceType: domain.ServiceType(r.ServiceType),
		Address:     r.Address,
		Notes:       r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		UserID:          resp.UserID,
		BikeID:          resp.BikeID,
		ServiceID:       resp.ServiceID,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		TimeSlot:        resp.TimeSlot.String(),
		DurationMinutes: resp.DurationMinutes,
		ServiceType:     resp.ServiceType,
		Address:         resp.Address,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		TotalAmount:     resp.TotalAmount,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
