package bitly

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bitlink/config"
	cErr "bitlink/internal/pkg/error"
	"bitlink/internal/telemetry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, handler http.Handler) (*BitlyService, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	conf := &config.Configuration{
		App: config.App{Name: "bitlink"},
		Bitly: config.Bitly{
			AccessToken: "test-token",
			APIURL:      server.URL + "/v4",
			Domain:      "bit.ly",
			ClickUnits:  -1,
		},
	}
	svc := NewBitlyService(config.NewStore(conf), &telemetry.Trace{}, &telemetry.Metric{}, server.Client()).(*BitlyService)
	return svc, server
}

func TestBitlyService_UserInfo(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v4/user", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"login":"jdoe","name":"J Doe","default_group_guid":"Bk1"}`))
	}))

	info, err := svc.UserInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "jdoe", info.Login)
	require.NotNil(t, info.DefaultGroupGUID)
	assert.Equal(t, "Bk1", *info.DefaultGroupGUID)
}

func TestBitlyService_UserInfo_MissingGroupGUID(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"login":"jdoe"}`))
	}))

	_, err := svc.UserInfo(context.Background())
	require.Error(t, err)
	assert.Equal(t, cErr.EXTERNAL_RESPONSE_FORMAT_ERROR, cErr.From(err).ErrorCode())
	assert.False(t, cErr.IsHTTP(err))
}

func TestBitlyService_Shorten(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v4/shorten", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload ShortenPayload
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "bit.ly", payload.Domain)
		assert.Equal(t, "Bk1", payload.GroupGUID)
		assert.Contains(t, payload.LongURL, "/landing")

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"bit.ly/3xYz","link":"https://bit.ly/3xYz","long_url":"` + payload.LongURL + `"}`))
	})
	checked := 0
	mux.HandleFunc("/landing", func(w http.ResponseWriter, r *http.Request) {
		checked++
		assert.Empty(t, r.Header.Get("Authorization"), "token must not leak to the long url")
		w.Write([]byte("<html></html>"))
	})

	svc, server := newTestService(t, mux)

	t.Run("without long url check", func(t *testing.T) {
		link, err := svc.Shorten(context.Background(), server.URL+"/landing", "Bk1")
		require.NoError(t, err)
		assert.Equal(t, "https://bit.ly/3xYz", link)
		assert.Equal(t, 0, checked)
	})

	t.Run("with long url check", func(t *testing.T) {
		svc.conf.Bitly.VerifyLongURL = true
		defer func() { svc.conf.Bitly.VerifyLongURL = false }()

		link, err := svc.Shorten(context.Background(), server.URL+"/landing", "Bk1")
		require.NoError(t, err)
		assert.Equal(t, "https://bit.ly/3xYz", link)
		assert.Equal(t, 1, checked)
	})
}

func TestBitlyService_Shorten_LongURLCheckFails(t *testing.T) {
	shortenCalled := false
	mux := http.NewServeMux()
	mux.HandleFunc("/v4/shorten", func(w http.ResponseWriter, r *http.Request) {
		shortenCalled = true
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	svc, server := newTestService(t, mux)
	svc.conf.Bitly.VerifyLongURL = true

	_, err := svc.Shorten(context.Background(), server.URL+"/missing", "Bk1")
	require.Error(t, err)
	assert.True(t, cErr.IsHTTP(err))
	assert.Equal(t, http.StatusNotFound, cErr.From(err).HttpCode())
	assert.Contains(t, err.Error(), "/missing")
	assert.False(t, shortenCalled)
}

func TestBitlyService_Shorten_ErrorResponses(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantHTTP bool
		wantCode int
		contains string
	}{
		{
			name:     "bad request from bitly",
			status:   http.StatusBadRequest,
			body:     `{"message":"INVALID_ARG_LONG_URL","description":"The value provided is invalid."}`,
			wantHTTP: true,
			wantCode: cErr.EXTERNAL_STATUS_ERROR,
			contains: "INVALID_ARG_LONG_URL: The value provided is invalid.",
		},
		{
			name:     "unauthorized",
			status:   http.StatusForbidden,
			body:     `{"message":"FORBIDDEN"}`,
			wantHTTP: true,
			wantCode: cErr.FORBIDDEN,
			contains: "403 Forbidden",
		},
		{
			name:     "missing link field",
			status:   http.StatusOK,
			body:     `{"id":"bit.ly/3xYz"}`,
			wantCode: cErr.EXTERNAL_RESPONSE_FORMAT_ERROR,
			contains: "no link",
		},
		{
			name:     "not json",
			status:   http.StatusOK,
			body:     `<html>`,
			wantCode: cErr.EXTERNAL_RESPONSE_FORMAT_ERROR,
			contains: "decode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))

			_, err := svc.Shorten(context.Background(), "https://example.com", "Bk1")
			require.Error(t, err)
			assert.Equal(t, tt.wantHTTP, cErr.IsHTTP(err))
			assert.Equal(t, tt.wantCode, cErr.From(err).ErrorCode())
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestBitlyService_ClickSummary(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v4/bitlinks/bit.ly/3xYz/clicks/summary", r.URL.Path)
		assert.Equal(t, "-1", r.URL.Query().Get("units"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Write([]byte(`{"total_clicks":42,"units":-1,"unit":"day"}`))
	}))

	clicks, err := svc.ClickSummary(context.Background(), "bit.ly/3xYz")
	require.NoError(t, err)
	assert.Equal(t, 42, clicks)
}

func TestBitlyService_ClickSummary_EscapedID(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v4/bitlinks/bit.ly/a%3Fb/clicks/summary", r.URL.EscapedPath())
		assert.Equal(t, "units=-1", r.URL.RawQuery)
		w.Write([]byte(`{"total_clicks":3}`))
	}))

	clicks, err := svc.ClickSummary(context.Background(), "bit.ly/a%3Fb")
	require.NoError(t, err)
	assert.Equal(t, 3, clicks)
}

func TestBitlyService_UsesReloadedToken(t *testing.T) {
	var tokens []string
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokens = append(tokens, r.Header.Get("Authorization"))
		w.Write([]byte(`{"total_clicks":1}`))
	}))

	_, err := svc.ClickSummary(context.Background(), "bit.ly/a")
	require.NoError(t, err)

	rotated := *svc.store.Load()
	rotated.Bitly.AccessToken = "rotated-token"
	svc.store.Set(&rotated)

	_, err = svc.ClickSummary(context.Background(), "bit.ly/a")
	require.NoError(t, err)
	assert.Equal(t, []string{"Bearer test-token", "Bearer rotated-token"}, tokens)
}

func TestBitlyService_ClickSummary_ZeroAndMissing(t *testing.T) {
	body := `{"total_clicks":0}`
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))

	clicks, err := svc.ClickSummary(context.Background(), "bit.ly/a")
	require.NoError(t, err)
	assert.Equal(t, 0, clicks)

	body = `{"units":-1}`
	_, err = svc.ClickSummary(context.Background(), "bit.ly/a")
	require.Error(t, err)
	assert.Equal(t, cErr.EXTERNAL_RESPONSE_FORMAT_ERROR, cErr.From(err).ErrorCode())
}

func TestBitlyService_ClickSummary_NotFound(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"NOT_FOUND","description":"The bitlink was not found"}`))
	}))

	_, err := svc.ClickSummary(context.Background(), "bit.ly/typo")
	require.Error(t, err)
	assert.True(t, cErr.IsHTTP(err))
	assert.Equal(t, cErr.NOT_FOUND, cErr.From(err).ErrorCode())
}

func TestBitlyService_TransportError(t *testing.T) {
	svc, server := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := svc.ClickSummary(context.Background(), "bit.ly/a")
	require.Error(t, err)
	assert.True(t, cErr.IsHTTP(err))
	assert.Equal(t, cErr.EXTERNAL_REQUEST_ERROR, cErr.From(err).ErrorCode())
}
