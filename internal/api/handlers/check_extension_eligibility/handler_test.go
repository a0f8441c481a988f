package check_extension_eligibility

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	checkEligibility "github.com/m04kA/SMC-RentalService/internal/usecase/check_eligibility"
)

type stubUseCase struct {
	got  *checkEligibility.Request
	resp *checkEligibility.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *checkEligibility.Request) (*checkEligibility.Response, error) {
	s.got = req
	return s.resp, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(uc *stubUseCase, userID, role, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Handle("/rentals/{rentalId}/extension-eligibility",
		middleware.Auth(http.HandlerFunc(NewHandler(uc, nopLogger{}).Handle)))

	req := httptest.NewRequest(http.MethodGet, target, nil)
	if userID != "" {
		req.Header.Set(middleware.HeaderUserID, userID)
	}
	if role != "" {
		req.Header.Set(middleware.HeaderUserRole, role)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_NotEligibleIsStillOK(t *testing.T) {
	uc := &stubUseCase{resp: &checkEligibility.Response{
		RentalID: 7,
		Reason:   "rental already has a pending extension request",
	}}

	rec := serve(uc, "3", "", "/rentals/7/extension-eligibility")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, &checkEligibility.Request{RentalID: 7, UserID: 3}, uc.got)

	var body checkEligibility.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.False(t, body.IsEligible)
	assert.Equal(t, "rental already has a pending extension request", body.Reason)
}

func TestHandle_AdminFlagIsPassed(t *testing.T) {
	uc := &stubUseCase{resp: &checkEligibility.Response{RentalID: 7, IsEligible: true}}

	rec := serve(uc, "99", "admin", "/rentals/7/extension-eligibility")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, uc.got.IsAdmin)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name     string
		userID   string
		target   string
		err      error
		wantCode int
	}{
		{name: "no user", target: "/rentals/7/extension-eligibility", wantCode: http.StatusUnauthorized},
		{name: "bad rental id", userID: "3", target: "/rentals/x/extension-eligibility", wantCode: http.StatusBadRequest},
		{name: "not owner", userID: "3", target: "/rentals/7/extension-eligibility",
			err: checkEligibility.ErrAccessDenied, wantCode: http.StatusForbidden},
		{name: "not found", userID: "3", target: "/rentals/7/extension-eligibility",
			err: checkEligibility.ErrRentalNotFound, wantCode: http.StatusNotFound},
		{name: "internal", userID: "3", target: "/rentals/7/extension-eligibility",
			err: errors.New("db down"), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&stubUseCase{err: tt.err}, tt.userID, "", tt.target)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
