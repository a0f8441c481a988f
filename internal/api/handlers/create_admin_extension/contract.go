package create_admin_extension

import (
	"context"

	createAdminExtension "github.com/m04kA/SMC-RentalService/internal/usecase/create_admin_extension"
)

type CreateAdminExtensionUseCase interface {
	Execute(ctx context.Context, req *createAdminExtension.Request) (*createAdminExtension.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
