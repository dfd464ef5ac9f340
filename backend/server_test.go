package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/barkprotocol/blinkshare-platform-sub000/backend/handlers"
	"github.com/barkprotocol/blinkshare-platform-sub000/backend/handlers/mock"
	"github.com/barkprotocol/blinkshare-platform-sub000/backend/middleware"
	"github.com/barkprotocol/blinkshare-platform-sub000/backend/models"
	"github.com/barkprotocol/blinkshare-platform-sub000/internal/domain/blinks"
)

const guildID = "123456789012345678"

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func newTestServer(t *testing.T, rateLimit int) (*Server, *mock.MockBlinkService) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockBlinkService(ctrl)
	srv := NewServer(svc, map[string]handlers.Pinger{
		"database": pingFunc(func(context.Context) error { return nil }),
	}, Config{AllowOrigins: "*", RateLimit: rateLimit, Version: "test"})
	return srv, svc
}

func doRequest(t *testing.T, srv *Server, method, target, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := srv.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func doRequestWithHeaders(t *testing.T, srv *Server, method, target string, headers map[string]string) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := srv.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decodeError(t *testing.T, raw []byte) *models.APIResponse {
	t.Helper()
	var env models.APIResponse
	require.NoError(t, json.Unmarshal(raw, &env))
	require.NotNil(t, env.Error)
	return &env
}

func TestDescribe(t *testing.T) {
	srv, svc := newTestServer(t, 0)
	svc.EXPECT().
		Describe(gomock.Any(), blinks.DescribeRequest{GuildID: guildID, Code: "abc"}).
		Return(&blinks.ActionMetadata{Type: blinks.ActionTypeAction, Title: "Guild"}, nil)

	resp, raw := doRequest(t, srv, http.MethodGet, "/blinks/"+guildID+"?code=abc", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, middleware.ActionVersion, resp.Header.Get("X-Action-Version"))
	assert.Equal(t, middleware.BlockchainID, resp.Header.Get("X-Blockchain-Ids"))

	var meta blinks.ActionMetadata
	require.NoError(t, json.Unmarshal(raw, &meta))
	assert.Equal(t, "Guild", meta.Title)
}

func TestBuy(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		body       string
		setup      func(svc *mock.MockBlinkService)
		wantStatus int
		wantCode   string
	}{
		{
			name:   "transaction returned",
			target: "/blinks/" + guildID + "/buy?roleId=42&code=abc",
			body:   `{"account":"payer"}`,
			setup: func(svc *mock.MockBlinkService) {
				svc.EXPECT().Buy(gomock.Any(), blinks.BuyRequest{
					GuildID: guildID, RoleID: "42", Code: "abc", Account: "payer",
				}).Return(&blinks.ActionPostResponse{Type: blinks.ActionTypeTransaction, Transaction: "AQID"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "discord bot flag from body",
			target: "/blinks/" + guildID + "/buy?roleId=42&code=abc",
			body:   `{"account":"payer","isDiscordBot":true}`,
			setup: func(svc *mock.MockBlinkService) {
				svc.EXPECT().Buy(gomock.Any(), blinks.BuyRequest{
					GuildID: guildID, RoleID: "42", Code: "abc", Account: "payer", IsDiscordBot: true,
				}).Return(&blinks.ActionPostResponse{Type: blinks.ActionTypeTransaction}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "malformed body",
			target:     "/blinks/" + guildID + "/buy?roleId=42&code=abc",
			body:       `{"account":`,
			setup:      func(*mock.MockBlinkService) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_BODY",
		},
		{
			name:   "insufficient funds",
			target: "/blinks/" + guildID + "/buy?roleId=42&code=abc",
			body:   `{"account":"payer"}`,
			setup: func(svc *mock.MockBlinkService) {
				svc.EXPECT().Buy(gomock.Any(), gomock.Any()).Return(nil, &blinks.RequestError{
					Status: http.StatusBadRequest, Code: "INSUFFICIENT_FUNDS", Message: "insufficient funds",
				})
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INSUFFICIENT_FUNDS",
		},
		{
			name:   "unknown role",
			target: "/blinks/" + guildID + "/buy?roleId=42&code=abc",
			body:   `{"account":"payer"}`,
			setup: func(svc *mock.MockBlinkService) {
				svc.EXPECT().Buy(gomock.Any(), gomock.Any()).Return(nil, &blinks.RequestError{
					Status: http.StatusNotFound, Code: "NOT_FOUND", Message: "role not found",
				})
			},
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:   "unexpected failure hides detail",
			target: "/blinks/" + guildID + "/buy?roleId=42&code=abc",
			body:   `{"account":"payer"}`,
			setup: func(svc *mock.MockBlinkService) {
				svc.EXPECT().Buy(gomock.Any(), gomock.Any()).Return(nil, errors.New("pq: connection reset"))
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, svc := newTestServer(t, 0)
			tt.setup(svc)

			resp, raw := doRequest(t, srv, http.MethodPost, tt.target, tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantCode != "" {
				env := decodeError(t, raw)
				assert.Equal(t, tt.wantCode, env.Error.Code)
				assert.NotContains(t, string(raw), "connection reset")
			}
		})
	}
}

func TestConfirm(t *testing.T) {
	t.Run("completed", func(t *testing.T) {
		srv, svc := newTestServer(t, 0)
		svc.EXPECT().Confirm(gomock.Any(), blinks.ConfirmRequest{
			GuildID: guildID, RoleID: "42", Code: "abc", Signature: "sig", IsDiscordBot: true,
		}).Return(&blinks.CompletedAction{Type: blinks.ActionTypeCompleted, Label: "Return to Discord"}, nil)

		resp, raw := doRequest(t, srv, http.MethodPost,
			"/blinks/"+guildID+"/confirm?roleId=42&code=abc&isDiscordBot=true", `{"signature":"sig"}`)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var done blinks.CompletedAction
		require.NoError(t, json.Unmarshal(raw, &done))
		assert.Equal(t, "Return to Discord", done.Label)
	})

	t.Run("signature replay", func(t *testing.T) {
		srv, svc := newTestServer(t, 0)
		svc.EXPECT().Confirm(gomock.Any(), gomock.Any()).Return(nil, &blinks.RequestError{
			Status: http.StatusConflict, Code: "CONFLICT", Message: "transaction already used",
		})

		resp, raw := doRequest(t, srv, http.MethodPost,
			"/blinks/"+guildID+"/confirm?roleId=42&code=abc", `{"signature":"sig"}`)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		env := decodeError(t, raw)
		assert.Equal(t, "transaction already used", env.Message)
	})
}

func TestActionsRules(t *testing.T) {
	srv, _ := newTestServer(t, 0)
	resp, raw := doRequest(t, srv, http.MethodGet, "/actions.json", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"rules":[{"pathPattern":"/blinks/**","apiPath":"/blinks/**"}]}`, string(raw))
}

func TestHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		srv, _ := newTestServer(t, 0)
		resp, raw := doRequest(t, srv, http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var env struct {
			Success bool               `json:"success"`
			Data    models.HealthCheck `json:"data"`
		}
		require.NoError(t, json.Unmarshal(raw, &env))
		assert.True(t, env.Success)
		assert.Equal(t, "healthy", env.Data.Status)
		assert.Equal(t, "test", env.Data.Version)
	})

	t.Run("database down", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		srv := NewServer(mock.NewMockBlinkService(ctrl), map[string]handlers.Pinger{
			"database": pingFunc(func(context.Context) error { return errors.New("refused") }),
		}, Config{AllowOrigins: "*"})

		resp, raw := doRequest(t, srv, http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		env := decodeError(t, raw)
		assert.Equal(t, "SERVICE_UNAVAILABLE", env.Error.Code)
		assert.Equal(t, "refused", env.Error.Details["database"])
	})
}

func TestRateLimit(t *testing.T) {
	srv, svc := newTestServer(t, 2)
	svc.EXPECT().Describe(gomock.Any(), gomock.Any()).Return(&blinks.ActionMetadata{}, nil).Times(2)

	for i := 0; i < 2; i++ {
		resp, _ := doRequest(t, srv, http.MethodGet, "/blinks/"+guildID, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, raw := doRequest(t, srv, http.MethodGet, "/blinks/"+guildID, "")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", decodeError(t, raw).Error.Code)
}

func TestRateLimit_IgnoresSpoofedForwardedFor(t *testing.T) {
	srv, svc := newTestServer(t, 1)
	svc.EXPECT().Describe(gomock.Any(), gomock.Any()).Return(&blinks.ActionMetadata{}, nil).Times(1)

	allowed := 0
	for i := 0; i < 20; i++ {
		resp, _ := doRequestWithHeaders(t, srv, http.MethodGet, "/blinks/"+guildID, map[string]string{
			"X-Forwarded-For": fmt.Sprintf("203.0.113.%d", i+1),
		})
		if resp.StatusCode == http.StatusOK {
			allowed++
		}
	}
	assert.Equal(t, 1, allowed, "an untrusted peer cannot pick its own bucket")
}

func TestRateLimit_TrustedProxy(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockBlinkService(ctrl)
	srv := NewServer(svc, nil, Config{
		AllowOrigins:   "*",
		RateLimit:      1,
		ProxyHeader:    fiber.HeaderXForwardedFor,
		TrustedProxies: []string{"0.0.0.0/0"},
	})
	svc.EXPECT().Describe(gomock.Any(), gomock.Any()).Return(&blinks.ActionMetadata{}, nil).Times(2)

	for _, ip := range []string{"203.0.113.1", "203.0.113.2"} {
		resp, _ := doRequestWithHeaders(t, srv, http.MethodGet, "/blinks/"+guildID, map[string]string{
			"X-Forwarded-For": ip,
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode, ip)
	}

	resp, _ := doRequestWithHeaders(t, srv, http.MethodGet, "/blinks/"+guildID, map[string]string{
		"X-Forwarded-For": "203.0.113.1",
	})
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestUnknownRoute(t *testing.T) {
	srv, _ := newTestServer(t, 0)
	resp, raw := doRequest(t, srv, http.MethodGet, "/nope", "")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, raw).Error.Code)
}
