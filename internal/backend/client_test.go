package backend

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homepage/internal/config"
	"homepage/internal/logging"
)

func newBackend(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_URL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		want    string
	}{
		{name: "default when unset", baseURL: "", want: "http://localhost:4000/"},
		{name: "configured", baseURL: "http://api.internal:9000", want: "http://api.internal:9000/"},
		{name: "trailing slash", baseURL: "http://api.internal:9000/", want: "http://api.internal:9000/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(config.BackendConfig{BaseURL: tt.baseURL}, logging.Discard())
			assert.Equal(t, tt.want, c.URL())
		})
	}
}

func TestClient_GetRoot(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := newBackend(t, http.StatusOK, `{"ok": true}`)
		c := New(config.BackendConfig{BaseURL: srv.URL}, logging.Discard())

		p, err := c.GetRoot(context.Background())
		require.NoError(t, err)
		assert.JSONEq(t, `{"ok": true}`, string(p))
	})

	t.Run("non-2xx status", func(t *testing.T) {
		srv := newBackend(t, http.StatusInternalServerError, `{"detail": "boom"}`)
		c := New(config.BackendConfig{BaseURL: srv.URL}, logging.Discard())

		p, err := c.GetRoot(context.Background())
		require.Error(t, err)
		assert.Nil(t, p)

		var reqErr *RequestError
		require.True(t, errors.As(err, &reqErr))
		assert.Equal(t, http.StatusInternalServerError, reqErr.StatusCode)
		assert.Equal(t, "request failed: 500", err.Error())
		assert.ErrorIs(t, err, ErrBackend)
	})

	t.Run("invalid json", func(t *testing.T) {
		srv := newBackend(t, http.StatusOK, `<html>nope</html>`)
		c := New(config.BackendConfig{BaseURL: srv.URL}, logging.Discard())

		_, err := c.GetRoot(context.Background())
		assert.ErrorIs(t, err, ErrInvalidPayload)
		assert.ErrorIs(t, err, ErrBackend)
	})

	t.Run("connection refused", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		c := New(config.BackendConfig{BaseURL: url}, logging.Discard())
		_, err := c.GetRoot(context.Background())
		assert.ErrorIs(t, err, ErrTransport)
		assert.ErrorIs(t, err, ErrBackend)
	})

	t.Run("canceled context", func(t *testing.T) {
		srv := newBackend(t, http.StatusOK, `{}`)
		c := New(config.BackendConfig{BaseURL: srv.URL}, logging.Discard())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := c.GetRoot(ctx)
		assert.ErrorIs(t, err, ErrTransport)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestClient_GetRootLogs(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(&buf, config.LogConfig{Level: "info", Format: "json"})

	ok := newBackend(t, http.StatusOK, `{"message": "Hello World"}`)
	_, err := New(config.BackendConfig{BaseURL: ok.URL}, log).GetRoot(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.Contains(buf.String(), `"msg":"backend response"`))
	assert.True(t, strings.Contains(buf.String(), `"payload":{"message":"Hello World"}`))

	buf.Reset()
	bad := newBackend(t, http.StatusBadGateway, ``)
	_, err = New(config.BackendConfig{BaseURL: bad.URL}, log).GetRoot(context.Background())
	require.Error(t, err)
	assert.True(t, strings.Contains(buf.String(), `"msg":"backend call error"`))
	assert.True(t, strings.Contains(buf.String(), `request failed: 502`))
}

func TestClient_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()

	ok := newBackend(t, http.StatusOK, `[1, 2]`)
	bad := newBackend(t, http.StatusNotFound, ``)

	okClient := New(config.BackendConfig{BaseURL: ok.URL}, logging.Discard(), WithRegisterer(reg))
	badClient := New(config.BackendConfig{BaseURL: bad.URL}, logging.Discard(), WithRegisterer(reg))

	_, _ = okClient.GetRoot(context.Background())
	_, _ = okClient.GetRoot(context.Background())
	_, _ = badClient.GetRoot(context.Background())

	// Both clients share the collector registered first.
	assert.Equal(t, float64(2), testutil.ToFloat64(okClient.outcomes.WithLabelValues("ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(okClient.outcomes.WithLabelValues("status")))
}

func TestWithHTTPClient(t *testing.T) {
	var called bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`"text"`))
	}))
	defer srv.Close()

	c := New(config.BackendConfig{BaseURL: srv.URL}, logging.Discard(), WithHTTPClient(srv.Client()))
	p, err := c.GetRoot(context.Background())
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, `"text"`, string(p))
}
