package get_cameras

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/service/cameras/models"
)

type stubService struct {
	gotOnlyAvailable bool
	resp             *models.CameraListResponse
	err              error
}

func (s *stubService) GetCameras(_ context.Context, onlyAvailable bool) (*models.CameraListResponse, error) {
	s.gotOnlyAvailable = onlyAvailable
	return s.resp, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *stubService, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_ListsCameras(t *testing.T) {
	svc := &stubService{resp: &models.CameraListResponse{Cameras: []models.CameraResponse{
		{ID: 1, Name: "Canon R6", SerialNumber: "A-1", PricePerDay: 1200, IsAvailable: true},
	}}}

	rec := serve(svc, "/cameras?available=true")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, svc.gotOnlyAvailable)

	var body models.CameraListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Cameras, 1)
	assert.Equal(t, "A-1", body.Cameras[0].SerialNumber)
}

func TestHandle_DefaultsToAllUnits(t *testing.T) {
	svc := &stubService{resp: &models.CameraListResponse{Cameras: []models.CameraResponse{}}}

	rec := serve(svc, "/cameras")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, svc.gotOnlyAvailable)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(&stubService{}, "/cameras?available=maybe").Code)
	assert.Equal(t, http.StatusInternalServerError,
		serve(&stubService{err: errors.New("db down")}, "/cameras").Code)
}
