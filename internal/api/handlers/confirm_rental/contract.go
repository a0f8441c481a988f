package confirm_rental

import (
	"context"

	confirmRental "github.com/m04kA/SMC-RentalService/internal/usecase/confirm_rental"
)

type ConfirmRentalUseCase interface {
	Execute(ctx context.Context, req *confirmRental.Request) (*confirmRental.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
