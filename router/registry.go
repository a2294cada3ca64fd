package router

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrDuplicateRoute    = errors.New("duplicate route")
	ErrNotCallable       = errors.New("route handler is not callable")
	ErrUnsupportedMethod = errors.New("unsupported HTTP method")
	ErrInvalidPath       = errors.New("route path must start with /")
)

// HandlerFunc handles one request. It may block on work bound to the
// request context.
type HandlerFunc func(r *http.Request) (any, error)

// Action binds an HTTP method and path to a handler.
type Action struct {
	Method  string
	Path    string
	Handler HandlerFunc
}

// Controller is a group of actions registered together.
type Controller interface {
	Actions() []Action
}

// ActionList is a Controller with a fixed set of actions.
type ActionList []Action

func (l ActionList) Actions() []Action { return l }

var supportedMethods = map[string]struct{}{
	http.MethodGet:     {},
	http.MethodPost:    {},
	http.MethodPut:     {},
	http.MethodDelete:  {},
	http.MethodPatch:   {},
	http.MethodOptions: {},
	http.MethodHead:    {},
}

type routeKey struct {
	method string
	path   string
}

// Registry is the immutable set of routes built from controllers.
type Registry struct {
	actions []Action
	index   map[routeKey]int
}

// NewRegistry walks the controllers in order and registers their actions.
// Method names are case-insensitive and stored upper-case.
func NewRegistry(controllers ...Controller) (*Registry, error) {
	reg := &Registry{index: make(map[routeKey]int)}

	for _, c := range controllers {
		for _, a := range c.Actions() {
			if err := reg.add(a); err != nil {
				return nil, err
			}
		}
	}

	return reg, nil
}

func (reg *Registry) add(a Action) error {
	a.Method = strings.ToUpper(a.Method)

	if _, ok := supportedMethods[a.Method]; !ok {
		return fmt.Errorf("%w: %q for %s", ErrUnsupportedMethod, a.Method, a.Path)
	}
	if !strings.HasPrefix(a.Path, "/") {
		return fmt.Errorf("%w: %q", ErrInvalidPath, a.Path)
	}
	if a.Handler == nil {
		return fmt.Errorf("%w: %s %s", ErrNotCallable, a.Method, a.Path)
	}

	key := routeKey{method: a.Method, path: a.Path}
	if _, exists := reg.index[key]; exists {
		return fmt.Errorf("%w: %s %s", ErrDuplicateRoute, a.Method, a.Path)
	}

	reg.index[key] = len(reg.actions)
	reg.actions = append(reg.actions, a)
	return nil
}

// Lookup returns the action registered for method and path.
func (reg *Registry) Lookup(method, path string) (Action, bool) {
	i, ok := reg.index[routeKey{method: strings.ToUpper(method), path: path}]
	if !ok {
		return Action{}, false
	}
	return reg.actions[i], true
}

// Actions returns the registered actions in registration order.
func (reg *Registry) Actions() []Action {
	out := make([]Action, len(reg.actions))
	copy(out, reg.actions)
	return out
}
