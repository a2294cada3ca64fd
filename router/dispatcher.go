package router

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Dispatcher serves the actions of a Registry.
type Dispatcher struct {
	registry *Registry
	log      *slog.Logger
}

func NewDispatcher(registry *Registry, log *slog.Logger) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		log:      log,
	}
}

// Dispatch resolves and runs the action for r.
func (d *Dispatcher) Dispatch(r *http.Request) Response {
	action, ok := d.registry.Lookup(r.Method, r.URL.Path)
	if !ok {
		return NotFound()
	}
	return d.invoke(action, r)
}

func (d *Dispatcher) invoke(action Action, r *http.Request) (resp Response) {
	defer func() {
		if rec := recover(); rec != nil {
			d.log.Error("Handler panicked",
				slog.String("method", action.Method),
				slog.String("path", action.Path),
				"err", fmt.Errorf("panic: %v", rec))
			resp = InternalError()
		}
	}()

	ret, err := action.Handler(r)
	if err != nil {
		d.log.Error("Handler failed",
			slog.String("method", action.Method),
			slog.String("path", action.Path),
			"err", err)
		return InternalError()
	}
	return Normalize(ret)
}

// ServeHTTP makes the dispatcher usable without chi.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	WriteResponse(w, d.Dispatch(r))
}

// Mount binds every registered action on mux. Requests that match no action,
// including a known path with another method, get the JSON 404.
func (d *Dispatcher) Mount(mux chi.Router) {
	for _, action := range d.registry.Actions() {
		mux.Method(action.Method, action.Path, d.handlerFor(action))
	}

	notFound := func(w http.ResponseWriter, _ *http.Request) {
		WriteResponse(w, NotFound())
	}
	mux.NotFound(notFound)
	mux.MethodNotAllowed(notFound)
}

func (d *Dispatcher) handlerFor(action Action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteResponse(w, d.invoke(action, r))
	}
}
