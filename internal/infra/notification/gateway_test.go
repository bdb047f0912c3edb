package notification

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"lifeline/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMessenger(t *testing.T, handler http.HandlerFunc) *gatewayMessenger {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		NotifyGateway: &config.NotifyGatewayConfig{
			BaseURL: srv.URL,
			APIKey:  "test-key",
		},
	}

	messenger, err := NewGatewayMessenger(cfg, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	gw, ok := messenger.(*gatewayMessenger)
	require.True(t, ok)

	return gw
}

func TestGatewayMessenger_SendSMS(t *testing.T) {
	var gotPath, gotAuth string
	var gotPayload smsPayload

	messenger := newTestMessenger(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.WriteHeader(http.StatusAccepted)
	})

	err := messenger.SendSMS(context.Background(), "+919876543210", "help is on the way")
	assert.NoError(t, err)
	assert.Equal(t, "/sms", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "+919876543210", gotPayload.To)
	assert.Equal(t, "help is on the way", gotPayload.Body)
}

func TestGatewayMessenger_SendEmail(t *testing.T) {
	var gotPath string
	var gotPayload emailPayload

	messenger := newTestMessenger(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.WriteHeader(http.StatusOK)
	})

	err := messenger.SendEmail(context.Background(), "authority@example.org", "Emergency declared", "details")
	assert.NoError(t, err)
	assert.Equal(t, "/email", gotPath)
	assert.Equal(t, "authority@example.org", gotPayload.To)
	assert.Equal(t, "Emergency declared", gotPayload.Subject)
}

func TestGatewayMessenger_NonSuccessStatus(t *testing.T) {
	messenger := newTestMessenger(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	err := messenger.SendSMS(context.Background(), "+919876543210", "body")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "non-success status")
}

func TestNewGatewayMessenger_MissingBaseURL(t *testing.T) {
	messenger, err := NewGatewayMessenger(&config.Config{}, slog.New(slog.DiscardHandler))
	assert.Error(t, err)
	assert.Nil(t, messenger)
}
