package httpserver

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ruteri/sbc-auth-gateway/api"
	"github.com/ruteri/sbc-auth-gateway/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, cfg *api.HTTPServerConfig) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg.Log = logger
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = "127.0.0.1:0"
	}
	cfg.GracefulShutdownDuration = time.Second

	reg, err := router.NewRegistry(router.ActionList{
		{Method: http.MethodGet, Path: "/", Handler: func(*http.Request) (any, error) {
			return api.MessageResponse{Message: "Hello, world!"}, nil
		}},
	})
	require.NoError(t, err)

	srv, err := New(cfg, router.NewDispatcher(reg, logger), nil)
	require.NoError(t, err)
	return srv
}

func serve(srv *Server, method, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	srv.srv.Handler.ServeHTTP(rr, httptest.NewRequest(method, path, nil))
	return rr
}

func TestServer_HealthEndpoints(t *testing.T) {
	srv := newTestServer(t, &api.HTTPServerConfig{})

	rr := serve(srv, http.MethodGet, "/livez")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"alive"}`, rr.Body.String())

	rr = serve(srv, http.MethodGet, "/readyz")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ready"}`, rr.Body.String())
}

func TestServer_DrainUndrain(t *testing.T) {
	srv := newTestServer(t, &api.HTTPServerConfig{})

	steps := []struct {
		path       string
		wantStatus string
	}{
		{"/drain", "draining"},
		{"/drain", "already draining"},
		{"/undrain", "ready"},
		{"/undrain", "already ready"},
	}

	for _, step := range steps {
		rr := serve(srv, http.MethodGet, step.path)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, fmt.Sprintf(`{"status":%q}`, step.wantStatus), rr.Body.String())

		if step.path == "/drain" {
			rr = serve(srv, http.MethodGet, "/readyz")
			assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		}
	}

	rr := serve(srv, http.MethodGet, "/readyz")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestServer_DispatcherRoutes(t *testing.T) {
	srv := newTestServer(t, &api.HTTPServerConfig{TrustProxy: true})

	rr := serve(srv, http.MethodGet, "/")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Hello, world!"}`, rr.Body.String())

	rr = serve(srv, http.MethodGet, "/unknown")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, rr.Body.String())

	rr = serve(srv, http.MethodGet, "/debug/pprof/")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestServer_Pprof(t *testing.T) {
	srv := newTestServer(t, &api.HTTPServerConfig{EnablePprof: true})

	rr := serve(srv, http.MethodGet, "/debug/pprof/")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestServer_MetricsRequireServer(t *testing.T) {
	_, err := New(&api.HTTPServerConfig{MetricsAddr: "127.0.0.1:0"}, nil, nil)
	assert.Error(t, err)
}

func TestServer_RunAndShutdown(t *testing.T) {
	srv := newTestServer(t, &api.HTTPServerConfig{})
	assert.Nil(t, srv.Addr())

	require.NoError(t, srv.RunInBackground())
	require.NotNil(t, srv.Addr())

	resp, err := http.Get("http://" + srv.Addr().String() + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Hello, world!"}`, string(body))

	srv.Shutdown()

	_, err = http.Get("http://" + srv.Addr().String() + "/livez")
	assert.Error(t, err)
}

func TestServer_ListenError(t *testing.T) {
	first := newTestServer(t, &api.HTTPServerConfig{})
	require.NoError(t, first.RunInBackground())
	defer first.Shutdown()

	second := newTestServer(t, &api.HTTPServerConfig{ListenAddr: first.Addr().String()})
	assert.Error(t, second.RunInBackground())
}
