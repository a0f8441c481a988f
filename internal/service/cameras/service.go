package cameras

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/service/cameras/models"
)

// Service каталог юнитов
type Service struct {
	cameraRepo CameraRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса камер
func NewService(cameraRepo CameraRepository, logger Logger) *Service {
	return &Service{
		cameraRepo: cameraRepo,
		logger:     logger,
	}
}

// GetCameras возвращает все юниты. Снятые с аренды тоже, с IsAvailable=false,
// чтобы админ видел их в календаре.
func (s *Service) GetCameras(ctx context.Context, onlyAvailable bool) (*models.CameraListResponse, error) {
	cameras, err := s.cameraRepo.List(ctx)
	if err != nil {
		s.logger.Error("GetCameras: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetCameras - repository error: %v", ErrInternal, err)
	}

	if onlyAvailable {
		filtered := cameras[:0]
		for _, c := range cameras {
			if c.IsAvailable {
				filtered = append(filtered, c)
			}
		}
		cameras = filtered
	}

	s.logger.Info("GetCameras: fetched %d cameras, onlyAvailable=%t", len(cameras), onlyAvailable)
	return models.FromDomainCameras(cameras), nil
}
