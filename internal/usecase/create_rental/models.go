package create_rental

import (
	"time"

	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// Request заявка арендатора на камеру
type Request struct {
	UserID    int64
	CameraID  int64
	StartDate types.Date
	EndDate   types.Date
}

// Response созданная заявка. Пересечения не блокируют создание,
// их разрешает админ при подтверждении.
type Response struct {
	RentalID     int64      `json:"rentalId"`
	UserID       int64      `json:"userId"`
	CameraID     int64      `json:"cameraId"`
	CameraName   string     `json:"cameraName"`
	CameraSerial string     `json:"cameraSerial"`
	StartDate    types.Date `json:"startDate"`
	EndDate      types.Date `json:"endDate"`
	Days         int        `json:"days"`
	PricePerDay  float64    `json:"pricePerDay"`
	TotalPrice   float64    `json:"totalPrice"`
	RentalStatus string     `json:"rentalStatus"`
	CreatedAt    time.Time  `json:"createdAt"`

	OverlappingRentals int `json:"overlappingRentals"`
}
