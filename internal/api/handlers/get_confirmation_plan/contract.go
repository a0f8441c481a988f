package get_confirmation_plan

import (
	"context"

	getConfirmationPlan "github.com/m04kA/SMC-RentalService/internal/usecase/get_confirmation_plan"
)

type GetConfirmationPlanUseCase interface {
	Execute(ctx context.Context, rentalID int64) (*getConfirmationPlan.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
