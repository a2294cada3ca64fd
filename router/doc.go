// Package router maps (method, path) pairs to handlers and gives every
// handler the same response contract.
//
// Controllers declare their routes as an explicit table:
//
//	func (h *Handler) Actions() []router.Action {
//		return []router.Action{
//			{Method: http.MethodPost, Path: "/auth/recv", Handler: h.Receive},
//		}
//	}
//
// NewRegistry collects the tables of all controllers once, rejecting
// duplicate routes, nil handlers, unsupported methods and relative paths. The
// resulting set never changes.
//
// A Dispatcher serves the registry. Handlers return any value: a Response is
// used verbatim, nil means 200 with an empty body, anything else becomes the
// body of a 200 response. Unknown routes get 404 {"error":"Not found"} and
// handler errors or panics get 500 {"error":"Internal server error"}.
package router
