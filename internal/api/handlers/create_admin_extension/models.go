package create_admin_extension

import (
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	createAdminExtension "github.com/m04kA/SMC-RentalService/internal/usecase/create_admin_extension"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

const proofField = "paymentProof"

// CreateAdminExtensionRequest JSON вариант запроса (без чека)
type CreateAdminExtensionRequest struct {
	NewEndDate string  `json:"newEndDate"`
	AdminNotes *string `json:"adminNotes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAdminExtensionRequest) ToUseCaseRequest(rentalID, adminID int64) (*createAdminExtension.Request, error) {
	newEndDate, err := types.ParseDate(r.NewEndDate)
	if err != nil {
		return nil, err
	}

	return &createAdminExtension.Request{
		RentalID:   rentalID,
		AdminID:    adminID,
		NewEndDate: newEndDate,
		AdminNotes: r.AdminNotes,
	}, nil
}

// fromMultipart читает форму: newEndDate, adminNotes и необязательный файл paymentProof
func fromMultipart(r *http.Request, rentalID, adminID int64, maxProofSize int64) (*createAdminExtension.Request, error) {
	proof, err := handlers.ReadFormFile(r, proofField, maxProofSize)
	if err != nil {
		return nil, err
	}

	req := CreateAdminExtensionRequest{NewEndDate: r.FormValue("newEndDate")}
	if notes := r.FormValue("adminNotes"); notes != "" {
		req.AdminNotes = &notes
	}

	useCaseReq, err := req.ToUseCaseRequest(rentalID, adminID)
	if err != nil {
		return nil, err
	}
	useCaseReq.PaymentProof = proof
	return useCaseReq, nil
}
