package reject_extension

import (
	"bytes"
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
	rejectExtension "github.com/m04kA/SMC-RentalService/internal/usecase/reject_extension"
)

type stubUseCase struct {
	got  *rejectExtension.Request
	resp *rejectExtension.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *rejectExtension.Request) (*rejectExtension.Response, error) {
	s.got = req
	return s.resp, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(uc *stubUseCase, role, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth, middleware.RequireAdmin)
	admin.HandleFunc("/extensions/{extensionId}/reject", NewHandler(uc, nopLogger{}).Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/admin/extensions/21/reject", bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(middleware.HeaderUserID, "1")
	req.Header.Set(middleware.HeaderUserRole, role)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Rejected(t *testing.T) {
	uc := &stubUseCase{resp: &rejectExtension.Response{ExtensionID: 21, RentalID: 7, Status: "rejected"}}

	rec := serve(uc, middleware.RoleAdmin, `{"notes":"камера нужна другому клиенту"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, int64(21), uc.got.ExtensionID)
	assert.Equal(t, int64(1), uc.got.AdminID)
	require.NotNil(t, uc.got.Notes)
	assert.Equal(t, "камера нужна другому клиенту", *uc.got.Notes)
}

func TestHandle_EmptyBody(t *testing.T) {
	uc := &stubUseCase{resp: &rejectExtension.Response{ExtensionID: 21, Status: "rejected"}}

	rec := serve(uc, middleware.RoleAdmin, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, uc.got.Notes)
}

func TestHandle_NonAdminForbidden(t *testing.T) {
	uc := &stubUseCase{}

	rec := serve(uc, middleware.RoleUser, "")

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
		{name: "not found", err: rejectExtension.ErrExtensionNotFound, wantCode: http.StatusNotFound},
		{
			name:     "already approved",
			err:      fmt.Errorf("%w: current status is approved", rejectExtension.ErrExtensionNotPending),
			wantCode: http.StatusConflict,
			wantMsg:  "extension is already decided: current status is approved",
		},
		{name: "invalid notes", err: rejectExtension.ErrInvalidInput, wantCode: http.StatusBadRequest},
		{name: "unexpected", err: fmt.Errorf("boom"), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&stubUseCase{err: tt.err}, middleware.RoleAdmin, "")

			assert.Equal(t, tt.wantCode, rec.Code)

			var body handlers.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, body.Message)
			}
		})
	}
}
