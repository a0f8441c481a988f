package models

import "github.com/m04kA/SMC-RentalService/internal/domain"

// CameraResponse юнит камеры в каталоге
type CameraResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	SerialNumber string  `json:"serialNumber"`
	PricePerDay  float64 `json:"pricePerDay"`
	IsAvailable  bool    `json:"isAvailable"`
}

// CameraListResponse каталог юнитов
type CameraListResponse struct {
	Cameras []CameraResponse `json:"cameras"`
}

// FromDomainCameras конвертирует список юнитов, nil превращается в пустой список
func FromDomainCameras(cameras []*domain.Camera) *CameraListResponse {
	resp := &CameraListResponse{Cameras: make([]CameraResponse, 0, len(cameras))}
	for _, c := range cameras {
		resp.Cameras = append(resp.Cameras, CameraResponse{
			ID:           c.ID,
			Name:         c.Name,
			SerialNumber: c.SerialNumber,
			PricePerDay:  c.PricePerDay,
			IsAvailable:  c.IsAvailable,
		})
	}
	return resp
}
