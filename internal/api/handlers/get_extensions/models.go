package get_extensions

import (
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/service/extensions/models"
)

// ToServiceRequest формирует фильтр из query параметров: status, userId, rentalId
func ToServiceRequest(r *http.Request) (*models.GetAllExtensionsRequest, error) {
	userID, err := handlers.QueryInt64(r, "userId")
	if err != nil {
		return nil, err
	}

	rentalID, err := handlers.QueryInt64(r, "rentalId")
	if err != nil {
		return nil, err
	}

	return &models.GetAllExtensionsRequest{
		Status:   handlers.QueryString(r, "status"),
		UserID:   userID,
		RentalID: rentalID,
	}, nil
}
