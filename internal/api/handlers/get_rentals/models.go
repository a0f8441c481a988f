package get_rentals

import (
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/service/rentals/models"
)

// parseRequest собирает фильтр календаря из query параметров
func parseRequest(r *http.Request) (*models.GetRentalsRequest, error) {
	from, err := handlers.QueryDate(r, "from")
	if err != nil {
		return nil, err
	}

	to, err := handlers.QueryDate(r, "to")
	if err != nil {
		return nil, err
	}

	cameraID, err := handlers.QueryInt64(r, "cameraId")
	if err != nil {
		return nil, err
	}

	userID, err := handlers.QueryInt64(r, "userId")
	if err != nil {
		return nil, err
	}

	return &models.GetRentalsRequest{
		From:     from,
		To:       to,
		Status:   handlers.QueryString(r, "status"),
		Shipping: handlers.QueryString(r, "shipping"),
		CameraID: cameraID,
		UserID:   userID,
	}, nil
}
