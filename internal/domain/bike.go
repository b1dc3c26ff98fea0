package domain

import "time"

// Bike represents a customer's registered bike
type Bike struct {
	ID          int64
	UserID      int64
	Brand       string
	Model       string
	NumberPlate string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOwnedBy returns true if the bike belongs to the given user
func (b *Bike) IsOwnedBy(userID int64) bool {
	return b.UserID == userID
}
