package oauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiscordStub(t *testing.T, userStatus int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostForm.Get("code") != "good-code" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		assert.Equal(t, "client-id", r.PostForm.Get("client_id"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "access-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/users/@me", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer access-token", r.Header.Get("Authorization"))
		w.WriteHeader(userStatus)
		if userStatus == http.StatusOK {
			_, _ = w.Write([]byte(`{"id":"123456789012345678","username":"buyer"}`))
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestExchanger_Exchange(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		userStatus int
		wantErr    bool
	}{
		{name: "valid code", code: "good-code", userStatus: http.StatusOK},
		{name: "rejected code", code: "bad-code", userStatus: http.StatusOK, wantErr: true},
		{name: "user lookup unauthorized", code: "good-code", userStatus: http.StatusUnauthorized, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newDiscordStub(t, tt.userStatus)
			exchanger := NewExchanger(Config{
				ClientID:     "client-id",
				ClientSecret: "client-secret",
				RedirectURL:  "https://blinks.example/callback",
				Scopes:       []string{"identify", "guilds.join"},
				APIBase:      srv.URL,
			})

			grant, err := exchanger.Exchange(context.Background(), tt.code)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrExchangeFailed)
				assert.Nil(t, grant)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "access-token", grant.AccessToken)
			assert.Equal(t, "123456789012345678", grant.UserID)
			assert.WithinDuration(t, time.Now().Add(time.Hour), grant.Expiry, time.Minute)
		})
	}
}

func TestExchanger_AuthCodeURL(t *testing.T) {
	exchanger := NewExchanger(Config{ClientID: "client-id", Scopes: []string{"identify"}})
	url := exchanger.AuthCodeURL("state-1")
	assert.Contains(t, url, DiscordAPIBase+"/oauth2/authorize")
	assert.Contains(t, url, "client_id=client-id")
	assert.Contains(t, url, "state=state-1")
}
