package domain

import "time"

// Service represents a catalog entry: a repair/maintenance service with a duration
type Service struct {
	ID              int64
	Name            string
	Description     string
	Price           float64
	DurationMinutes int
	Category        string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
