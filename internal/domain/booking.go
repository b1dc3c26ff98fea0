package domain

import (
	"time"

	"github.com/m04kA/SMC-BikeService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// ServiceType represents how the service is performed
type ServiceType string

const (
	ServiceTypeVisit  ServiceType = "visit"  // клиент приезжает в мастерскую
	ServiceTypePickup ServiceType = "pickup" // велосипед забирают у клиента
	ServiceTypeHome   ServiceType = "home"   // мастер выезжает к клиенту
)

// Booking represents a service booking in the system
type Booking struct {
	ID        int64
	UserID    int64
	BikeID    int64
	ServiceID int64

	BookingDate time.Time
	TimeSlot    types.TimeString
	// Длительность фиксируется в момент создания из услуги бронирования;
	// последующие правки каталога на занятость не влияют
	DurationMinutes int

	ServiceType ServiceType
	Address     *string
	Status      BookingStatus

	// Denormalized data for history
	ServiceName string
	TotalAmount float64
	Notes       *string

	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its time slots
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status != StatusCompleted && b.Status != StatusCancelled
}

// IsTerminal returns true if no further status transitions are allowed
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// RequiresAddress returns true if the service type needs a client address
func (t ServiceType) RequiresAddress() bool {
	return t == ServiceTypePickup || t == ServiceTypeHome
}

// IsValid returns true if the service type is one of the known values
func (t ServiceType) IsValid() bool {
	return t == ServiceTypeVisit || t == ServiceTypePickup || t == ServiceTypeHome
}

// IsValidStatus returns true if the status is one of the known values
func IsValidStatus(s BookingStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}
