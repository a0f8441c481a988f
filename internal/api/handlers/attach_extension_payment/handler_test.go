package attach_extension_payment

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/service/payments"
	"github.com/m04kA/SMC-RentalService/internal/service/payments/models"
)

type stubService struct {
	got  *models.AttachPaymentRequest
	resp *models.PaymentResponse
	err  error
}

func (s *stubService) AttachExtensionPayment(_ context.Context, req *models.AttachPaymentRequest) (*models.PaymentResponse, error) {
	s.got = req
	return s.resp, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *stubService, role, contentType string, body *bytes.Buffer) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Handle("/extensions/{extensionId}/payment",
		middleware.Auth(http.HandlerFunc(NewHandler(svc, 1024, nopLogger{}).Handle)))

	req := httptest.NewRequest(http.MethodPost, "/extensions/21/payment", body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set(middleware.HeaderUserID, "3")
	req.Header.Set(middleware.HeaderUserRole, role)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_EnsureWithoutProof(t *testing.T) {
	svc := &stubService{resp: &models.PaymentResponse{ID: 40, Status: "pending"}}

	rec := serve(svc, middleware.RoleUser, "", &bytes.Buffer{})

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got)
	assert.Equal(t, int64(21), svc.got.ExtensionID)
	assert.Equal(t, int64(3), svc.got.ActorID)
	assert.False(t, svc.got.IsAdmin)
	assert.Nil(t, svc.got.Proof)
}

func TestHandle_AdminAttachesProof(t *testing.T) {
	svc := &stubService{resp: &models.PaymentResponse{ID: 40, Status: "pending"}}

	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	part, err := mw.CreateFormFile("paymentProof", "receipt.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	rec := serve(svc, middleware.RoleAdmin, mw.FormDataContentType(), buf)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, svc.got.IsAdmin)
	require.NotNil(t, svc.got.Proof)
	assert.Equal(t, "receipt.pdf", svc.got.Proof.Name)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "not found", err: payments.ErrExtensionNotFound, wantCode: http.StatusNotFound},
		{name: "foreign extension", err: payments.ErrAccessDenied, wantCode: http.StatusForbidden},
		{name: "final", err: payments.ErrPaymentFinal, wantCode: http.StatusConflict},
		{name: "rejected extension", err: payments.ErrExtensionRejected, wantCode: http.StatusConflict},
		{name: "proof attached", err: payments.ErrProofAlreadyAttached, wantCode: http.StatusConflict},
		{name: "storage down", err: payments.ErrStorageUnavailable, wantCode: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&stubService{err: tt.err}, middleware.RoleUser, "", &bytes.Buffer{})
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
