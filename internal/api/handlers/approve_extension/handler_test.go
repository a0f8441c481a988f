package approve_extension

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	approveExtension "github.com/m04kA/SMC-RentalService/internal/usecase/approve_extension"
)

type stubUseCase struct {
	got  *approveExtension.Request
	resp *approveExtension.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *approveExtension.Request) (*approveExtension.Response, error) {
	s.got = req
	return s.resp, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(uc *stubUseCase, role string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth, middleware.RequireAdmin)
	admin.HandleFunc("/extensions/{extensionId}/approve", NewHandler(uc, nopLogger{}).Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/admin/extensions/21/approve", nil)
	req.Header.Set(middleware.HeaderUserID, "1")
	req.Header.Set(middleware.HeaderUserRole, role)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Approved(t *testing.T) {
	uc := &stubUseCase{resp: &approveExtension.Response{ExtensionID: 21, RentalID: 7, Status: "approved"}}

	rec := serve(uc, middleware.RoleAdmin)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, &approveExtension.Request{ExtensionID: 21, AdminID: 1}, uc.got)

	var body approveExtension.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "approved", body.Status)
}

func TestHandle_NonAdminForbidden(t *testing.T) {
	uc := &stubUseCase{}

	rec := serve(uc, middleware.RoleUser)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Nil(t, uc.got)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{name: "not found", err: approveExtension.ErrExtensionNotFound, wantCode: http.StatusNotFound},
		{
			name:     "already decided",
			err:      fmt.Errorf("%w: status is approved", approveExtension.ErrExtensionNotPending),
			wantCode: http.StatusConflict,
			wantMsg:  "status is approved",
		},
		{
			name: "window taken",
			err: fmt.Errorf("%w: camera is already booked between 2024-01-11 and 2024-01-13 (rentals [20])",
				approveExtension.ErrCameraUnavailable),
			wantCode: http.StatusConflict,
			wantMsg:  "rentals [20]",
		},
		{
			name:     "rental update failed",
			err:      fmt.Errorf("%w: rental 7 changed", approveExtension.ErrRentalUpdateFailed),
			wantCode: http.StatusInternalServerError,
		},
		{name: "unexpected", err: fmt.Errorf("boom"), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&stubUseCase{err: tt.err}, middleware.RoleAdmin)

			assert.Equal(t, tt.wantCode, rec.Code)

			var body handlers.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			if tt.wantMsg != "" {
				assert.Contains(t, body.Message, tt.wantMsg)
			}
		})
	}
}
