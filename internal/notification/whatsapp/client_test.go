package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-school/internal/settings"

	"github.com/stretchr/testify/assert"
)

type fakeStore map[string]string

func (f fakeStore) Get(ctx context.Context, schoolID, key string) (string, bool, error) {
	v, ok := f[key]
	return v, ok, nil
}

func TestConfigFor(t *testing.T) {
	cfg, err := ConfigFor(context.Background(), fakeStore{
		settings.KeyWhatsAppEnabled:       "true",
		settings.KeyWhatsAppAPIKey:        "token-123",
		settings.KeyWhatsAppPhoneNumberID: "5550001",
	}, "school-1")
	assert.NoError(t, err)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "token-123", cfg.APIKey)

	// enabled flag without credentials is treated as disabled
	cfg, err = ConfigFor(context.Background(), fakeStore{
		settings.KeyWhatsAppEnabled: "true",
	}, "school-1")
	assert.NoError(t, err)
	assert.False(t, cfg.Enabled)

	cfg, err = ConfigFor(context.Background(), fakeStore{}, "school-1")
	assert.NoError(t, err)
	assert.False(t, cfg.Enabled)
}

func TestSendText(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody textMessage

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"messages": []map[string]string{{"id": "wamid.test123"}},
		})
	}))
	defer srv.Close()

	client := NewClient().WithBaseURL(srv.URL)
	cfg := Config{Enabled: true, APIKey: "token-123", PhoneNumberID: "5550001"}

	id, err := client.SendText(context.Background(), cfg, "+919900112233", "Teacher Asha Rao marked attendance 500m from school (red zone)")
	assert.NoError(t, err)
	assert.Equal(t, "wamid.test123", id)
	assert.Equal(t, "/5550001/messages", gotPath)
	assert.Equal(t, "Bearer token-123", gotAuth)
	assert.Equal(t, "whatsapp", gotBody.MessagingProduct)
	assert.Equal(t, "+919900112233", gotBody.To)
	assert.Contains(t, gotBody.Text.Body, "red zone")
}

func TestSendText_ApiError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"invalid token"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient().WithBaseURL(srv.URL)
	cfg := Config{Enabled: true, APIKey: "bad", PhoneNumberID: "5550001"}

	_, err := client.SendText(context.Background(), cfg, "+919900112233", "hello")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestSendText_Disabled(t *testing.T) {
	client := NewClient()
	_, err := client.SendText(context.Background(), Config{}, "+919900112233", "hello")
	assert.Error(t, err)
}
