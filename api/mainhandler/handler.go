// Package mainhandler serves the gateway's root greeting.
package mainhandler

import (
	"net/http"

	"github.com/ruteri/sbc-auth-gateway/api"
	"github.com/ruteri/sbc-auth-gateway/router"
)

const greeting = "Hello, world!"

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Actions returns GET /.
func (h *Handler) Actions() []router.Action {
	return []router.Action{
		{Method: http.MethodGet, Path: "/", Handler: h.HandleIndex},
	}
}

func (h *Handler) HandleIndex(*http.Request) (any, error) {
	return api.MessageResponse{Message: greeting}, nil
}
