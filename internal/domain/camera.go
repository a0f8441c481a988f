package domain

import "time"

// Camera one physical, serial-numbered unit of a camera model.
// Several units can share the same Name.
type Camera struct {
	ID           int64
	Name         string
	SerialNumber string
	PricePerDay  float64
	IsAvailable  bool // false = unit withdrawn from rental (repair, sold)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
