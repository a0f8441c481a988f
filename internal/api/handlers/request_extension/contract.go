package request_extension

import (
	"context"

	requestExtension "github.com/m04kA/SMC-RentalService/internal/usecase/request_extension"
)

type RequestExtensionUseCase interface {
	Execute(ctx context.Context, req *requestExtension.Request) (*requestExtension.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
