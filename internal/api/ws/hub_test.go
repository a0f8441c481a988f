package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/infra/realtime"
	extensionModels "github.com/m04kA/SMC-RentalService/internal/service/extensions/models"
	paymentModels "github.com/m04kA/SMC-RentalService/internal/service/payments/models"
	rentalModels "github.com/m04kA/SMC-RentalService/internal/service/rentals/models"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeFetcher struct {
	calls []int64
	err   error
}

func (f *fakeFetcher) GetRental(_ context.Context, id int64) (*rentalModels.RentalResponse, error) {
	f.calls = append(f.calls, id)
	if f.err != nil {
		return nil, f.err
	}
	return &rentalModels.RentalResponse{ID: id, EndDate: types.MustParseDate("2024-01-13"), RentalStatus: "active"}, nil
}

func (f *fakeFetcher) GetExtension(_ context.Context, id int64) (*extensionModels.ExtensionResponse, error) {
	f.calls = append(f.calls, id)
	if f.err != nil {
		return nil, f.err
	}
	return &extensionModels.ExtensionResponse{ID: id, Status: "approved"}, nil
}

func (f *fakeFetcher) GetPayment(_ context.Context, id int64) (*paymentModels.PaymentResponse, error) {
	f.calls = append(f.calls, id)
	if f.err != nil {
		return nil, f.err
	}
	return &paymentModels.PaymentResponse{ID: id, Status: "verified"}, nil
}

func connect(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(hub)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 10*time.Millisecond)
	return conn
}

func TestHub_HandleEvent_RefetchesRow(t *testing.T) {
	fetcher := &fakeFetcher{}
	hub := NewHub(fetcher, fetcher, fetcher, nil, nopLogger{})
	conn := connect(t, hub)

	hub.HandleEvent(context.Background(), realtime.RentalUpdated(7))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg struct {
		Entity string                      `json:"entity"`
		Action string                      `json:"action"`
		ID     int64                       `json:"id"`
		Data   rentalModels.RentalResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &msg))

	assert.Equal(t, "rental", msg.Entity)
	assert.Equal(t, "updated", msg.Action)
	assert.Equal(t, int64(7), msg.Data.ID)
	assert.Equal(t, "2024-01-13", msg.Data.EndDate.String())
	assert.Equal(t, []int64{7}, fetcher.calls)
}

func TestHub_HandleEvent_FetchErrorIsNotBroadcast(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("not found")}
	hub := NewHub(fetcher, fetcher, fetcher, nil, nopLogger{})
	conn := connect(t, hub)

	hub.HandleEvent(context.Background(), realtime.ExtensionUpdated(3))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}

func TestHub_HandleEvent_NoClientsSkipsFetch(t *testing.T) {
	fetcher := &fakeFetcher{}
	hub := NewHub(fetcher, fetcher, fetcher, nil, nopLogger{})

	hub.HandleEvent(context.Background(), realtime.PaymentUpdated(1))

	assert.Empty(t, fetcher.calls)
}

func TestHub_RejectsForeignOrigin(t *testing.T) {
	fetcher := &fakeFetcher{}
	hub := NewHub(fetcher, fetcher, fetcher, []string{"https://admin.example.com"}, nopLogger{})

	srv := httptest.NewServer(hub)
	defer srv.Close()

	header := map[string][]string{"Origin": {"https://evil.example.com"}}
	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 403, resp.StatusCode)
	assert.Equal(t, 0, hub.Count())
}
