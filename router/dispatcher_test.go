package router

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDispatcher(t *testing.T, actions ...Action) *Dispatcher {
	t.Helper()
	reg, err := NewRegistry(ActionList(actions))
	require.NoError(t, err)
	return NewDispatcher(reg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, Response{Status: http.StatusOK}, Normalize(nil))
	assert.Equal(t, Response{Status: http.StatusOK}, Normalize((*Response)(nil)))

	created := NewResponse(http.StatusCreated, "made")
	assert.Equal(t, created, Normalize(created))
	assert.Equal(t, created, Normalize(&created))

	assert.Equal(t, OK(map[string]int{"n": 1}), Normalize(map[string]int{"n": 1}))
	assert.Equal(t, OK("text"), Normalize("text"))
}

func TestWriteResponse(t *testing.T) {
	tests := []struct {
		name        string
		resp        Response
		wantStatus  int
		wantBody    string
		wantType    string
		wantHeaders map[string]string
	}{
		{
			name:       "nil body",
			resp:       Response{Status: http.StatusNoContent},
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "zero status",
			resp:       Response{},
			wantStatus: http.StatusOK,
		},
		{
			name:       "bytes",
			resp:       OK([]byte{0x00, 0xff}),
			wantStatus: http.StatusOK,
			wantBody:   "\x00\xff",
			wantType:   "application/octet-stream",
		},
		{
			name:       "text",
			resp:       OK("hello"),
			wantStatus: http.StatusOK,
			wantBody:   "hello",
			wantType:   "text/plain; charset=utf-8",
		},
		{
			name:       "json",
			resp:       Error(http.StatusUnauthorized, "Authentication failure"),
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"Authentication failure"}`,
			wantType:   "application/json",
		},
		{
			name: "headers",
			resp: Response{
				Status:  http.StatusOK,
				Body:    "x",
				Headers: map[string]string{"Content-Type": "text/csv", "Cache-Control": "no-store"},
			},
			wantStatus:  http.StatusOK,
			wantBody:    "x",
			wantType:    "text/csv",
			wantHeaders: map[string]string{"Cache-Control": "no-store"},
		},
		{
			name:       "unencodable json",
			resp:       OK(map[string]any{"f": func() {}}),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Internal server error"}`,
			wantType:   "application/json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			WriteResponse(rr, tt.resp)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantBody, rr.Body.String())
			assert.Equal(t, tt.wantType, rr.Header().Get("Content-Type"))
			for k, v := range tt.wantHeaders {
				assert.Equal(t, v, rr.Header().Get(k))
			}
		})
	}
}

func TestDispatch(t *testing.T) {
	d := newTestDispatcher(t,
		Action{Method: http.MethodGet, Path: "/ok", Handler: okHandler(map[string]string{"message": "hi"})},
		Action{Method: http.MethodGet, Path: "/fail", Handler: func(*http.Request) (any, error) {
			return nil, errors.New("boom")
		}},
		Action{Method: http.MethodGet, Path: "/panic", Handler: func(*http.Request) (any, error) {
			panic("unexpected")
		}},
		Action{Method: http.MethodPost, Path: "/custom", Handler: func(*http.Request) (any, error) {
			return Error(http.StatusBadRequest, "bad"), nil
		}},
	)

	tests := []struct {
		method     string
		path       string
		wantStatus int
		wantBody   any
	}{
		{http.MethodGet, "/ok", http.StatusOK, map[string]string{"message": "hi"}},
		{http.MethodGet, "/fail", http.StatusInternalServerError, ErrorBody{Error: MsgInternalError}},
		{http.MethodGet, "/panic", http.StatusInternalServerError, ErrorBody{Error: MsgInternalError}},
		{http.MethodPost, "/custom", http.StatusBadRequest, ErrorBody{Error: "bad"}},
		{http.MethodGet, "/missing", http.StatusNotFound, ErrorBody{Error: MsgNotFound}},
		{http.MethodGet, "/custom", http.StatusNotFound, ErrorBody{Error: MsgNotFound}},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			resp := d.Dispatch(httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Equal(t, tt.wantBody, resp.Body)
		})
	}
}

func TestMount(t *testing.T) {
	d := newTestDispatcher(t,
		Action{Method: http.MethodPost, Path: "/echo", Handler: func(r *http.Request) (any, error) {
			body, err := io.ReadAll(r.Body)
			if err != nil {
				return nil, err
			}
			return body, nil
		}},
		Action{Method: http.MethodGet, Path: "/", Handler: okHandler(map[string]string{"message": "Hello, world!"})},
	)

	mux := chi.NewRouter()
	d.Mount(mux)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{"echo", http.MethodPost, "/echo", "payload", http.StatusOK, "payload"},
		{"root", http.MethodGet, "/", "", http.StatusOK, `{"message":"Hello, world!"}`},
		{"unknown path", http.MethodGet, "/nope", "", http.StatusNotFound, `{"error":"Not found"}`},
		{"wrong method", http.MethodGet, "/echo", "", http.StatusNotFound, `{"error":"Not found"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantBody, rr.Body.String())
		})
	}
}

func TestServeHTTP(t *testing.T) {
	d := newTestDispatcher(t, Action{Method: http.MethodGet, Path: "/", Handler: okHandler(nil)})

	rr := httptest.NewRecorder()
	d.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Body.String())

	rr = httptest.NewRecorder()
	d.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
