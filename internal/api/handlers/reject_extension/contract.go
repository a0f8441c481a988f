package reject_extension

import (
	"context"

	rejectExtension "github.com/m04kA/SMC-RentalService/internal/usecase/reject_extension"
)

type RejectExtensionUseCase interface {
	Execute(ctx context.Context, req *rejectExtension.Request) (*rejectExtension.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
