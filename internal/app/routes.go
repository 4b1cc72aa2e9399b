package app

import (
	"net/http"

	"github.com/kegliz/qasmplay/internal/server/router"
)

func (a *appServer) routes() []*router.Route {
	return []*router.Route{
		{
			Name:        "health",
			Method:      http.MethodGet,
			Pattern:     "/health",
			HandlerFunc: a.HealthHandler,
		},
		{
			Name:        "api.run",
			Method:      http.MethodPost,
			Pattern:     "/api/run",
			HandlerFunc: a.RunProgram,
		},
	}
}
