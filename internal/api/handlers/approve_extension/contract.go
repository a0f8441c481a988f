package approve_extension

import (
	"context"

	approveExtension "github.com/m04kA/SMC-RentalService/internal/usecase/approve_extension"
)

type ApproveExtensionUseCase interface {
	Execute(ctx context.Context, req *approveExtension.Request) (*approveExtension.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
