package adapter

import (
	"net/http"
)

// Endpoint is one REST operation. Path may contain {name} placeholders that
// are filled from [RequestOptions.PathParams].
type Endpoint struct {
	Method string
	Path   string
}

func (e Endpoint) String() string {
	return e.Method + " " + e.Path
}

var (
	EndpointRegister      = Endpoint{Method: http.MethodPost, Path: "/api/auth/register"}
	EndpointLogin         = Endpoint{Method: http.MethodPost, Path: "/api/auth/login"}
	EndpointCurrentUser   = Endpoint{Method: http.MethodGet, Path: "/api/auth/me"}
	EndpointListSessions  = Endpoint{Method: http.MethodGet, Path: "/api/sessions"}
	EndpointCreateSession = Endpoint{Method: http.MethodPost, Path: "/api/sessions"}
	EndpointGetSession    = Endpoint{Method: http.MethodGet, Path: "/api/sessions/{id}"}
	EndpointSubmitAnswer  = Endpoint{Method: http.MethodPost, Path: "/api/questions/{id}/answer"}
)
