package page

import (
	"context"
	"errors"
	"html"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"homepage/internal/backend"
	"homepage/internal/config"
	"homepage/internal/logging"
	"homepage/internal/page/mocks"
)

func renderHome(t *testing.T, h *Home) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, h.Component().Render(context.Background(), &b))
	return b.String()
}

func waitDone(t *testing.T, h *Home) {
	t.Helper()
	select {
	case <-h.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("fetch did not resolve")
	}
}

func homeFor(t *testing.T, handler http.HandlerFunc, opts ...Option) *Home {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := backend.New(config.BackendConfig{BaseURL: srv.URL}, logging.Discard())
	return NewHome(client, logging.Discard(), opts...)
}

func TestHome_RendersLoadedPayload(t *testing.T) {
	h := homeFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok": true}`))
	})

	assert.Contains(t, renderHome(t, h), LoadingText)

	h.Mount(context.Background())
	assert.Eventually(t, func() bool {
		return h.State().Phase == Loaded
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, "{\n  \"ok\": true\n}", h.Text())

	got := renderHome(t, h)
	assert.Contains(t, got, "<p>Hello from /home page</p>")
	assert.Contains(t, got, `<div style="background-color: #2196f3; color: #fff; padding: 16px; border-radius: 8px;"><pre`)
	assert.Contains(t, got, html.EscapeString("{\n  \"ok\": true\n}"))
	assert.NotContains(t, got, LoadingText)
}

func TestHome_StaysLoadingOnServerError(t *testing.T) {
	h := homeFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	h.Mount(context.Background())
	waitDone(t, h)

	s := h.State()
	assert.Equal(t, Failed, s.Phase)
	var reqErr *backend.RequestError
	require.True(t, errors.As(s.Err, &reqErr))
	assert.Equal(t, http.StatusInternalServerError, reqErr.StatusCode)

	got := renderHome(t, h)
	assert.Contains(t, got, LoadingText)
	assert.NotContains(t, got, "500")
	assert.NotContains(t, got, FailureText)
}

func TestHome_StaysLoadingWhenUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := backend.New(config.BackendConfig{BaseURL: url}, logging.Discard())
	h := NewHome(client, logging.Discard())

	h.Mount(context.Background())
	waitDone(t, h)

	assert.Equal(t, Failed, h.State().Phase)
	assert.ErrorIs(t, h.State().Err, backend.ErrTransport)
	assert.Contains(t, renderHome(t, h), LoadingText)
}

func TestHome_FailureVisible(t *testing.T) {
	f := new(mocks.MockFetcher)
	f.On("GetRoot", mock.Anything).Return(nil, errors.New("down")).Once()

	h := NewHome(f, logging.Discard(), WithFailureVisible(true))
	h.Mount(context.Background())
	waitDone(t, h)

	got := renderHome(t, h)
	assert.Contains(t, got, FailureText)
	assert.NotContains(t, got, LoadingText)
	f.AssertExpectations(t)
}

func TestHome_MountFetchesOnce(t *testing.T) {
	f := new(mocks.MockFetcher)
	f.On("GetRoot", mock.Anything).Return(backend.Payload(`{"n":1}`), nil).Once()

	h := NewHome(f, logging.Discard())
	for i := 0; i < 5; i++ {
		h.Mount(context.Background())
	}
	waitDone(t, h)
	h.Mount(context.Background())

	assert.Equal(t, Loaded, h.State().Phase)
	f.AssertNumberOfCalls(t, "GetRoot", 1)
}

func TestHome_MountSurvivesCanceledContext(t *testing.T) {
	f := new(mocks.MockFetcher)
	f.On("GetRoot", mock.MatchedBy(func(ctx context.Context) bool {
		return ctx.Err() == nil
	})).Return(backend.Payload(`[]`), nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := NewHome(f, logging.Discard())
	h.Mount(ctx)
	waitDone(t, h)

	assert.Equal(t, Loaded, h.State().Phase)
	assert.Equal(t, "[]", h.Text())
	f.AssertExpectations(t)
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "loaded", Loaded.String())
	assert.Equal(t, "failed", Failed.String())
}
