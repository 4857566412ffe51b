// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package navigation models the client surfaces (login, dashboard,
// interview, results) and the single current route shared by the UI and the
// data-access layer.
//
// The request client uses [Navigator] to force the login surface when the
// server rejects the credential, so the redirect does not depend on which
// caller saw the 401.
package navigation

import (
	"fmt"
	"sync"
)

// Surface identifies a top-level screen of the client.
type Surface string

const (
	// SurfaceLogin is the login/registration surface.
	SurfaceLogin Surface = "auth"
	// SurfaceLanding is the dashboard shown after authentication.
	SurfaceLanding Surface = "dashboard"
	// SurfaceInterview is the question-by-question interview surface.
	SurfaceInterview Surface = "interview"
	// SurfaceResults is the results view of a finished session.
	SurfaceResults Surface = "results"
)

// Route is a surface plus the session it is bound to, if any.
type Route struct {
	Surface   Surface
	SessionID int64
}

// String renders the route the way the web client addressed it.
func (r Route) String() string {
	if r.SessionID > 0 {
		return fmt.Sprintf("/%s/%d", r.Surface, r.SessionID)
	}
	return "/" + string(r.Surface)
}

// Login returns the route of the login surface.
func Login() Route { return Route{Surface: SurfaceLogin} }

// Landing returns the route of the dashboard.
func Landing() Route { return Route{Surface: SurfaceLanding} }

// Interview returns the interview route of sessionID.
func Interview(sessionID int64) Route {
	return Route{Surface: SurfaceInterview, SessionID: sessionID}
}

// Results returns the results route of sessionID.
func Results(sessionID int64) Route {
	return Route{Surface: SurfaceResults, SessionID: sessionID}
}

//go:generate mockgen -source=navigation.go -destination=../mock/navigator_mock.go -package=mock

// Navigator exposes the current route and moves the client to another one.
type Navigator interface {
	// Current returns the route currently displayed.
	Current() Route

	// Navigate switches the client to route.
	Navigate(route Route)
}

// Router is the goroutine-safe [Navigator] used by the client. It keeps the
// current route and notifies a single listener after every change.
type Router struct {
	mu       sync.RWMutex
	current  Route
	listener func(Route)
}

// NewRouter creates a Router positioned at start.
func NewRouter(start Route) *Router {
	return &Router{current: start}
}

// Current implements [Navigator].
func (r *Router) Current() Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Navigate implements [Navigator]. The listener is invoked outside the lock
// so it may call back into the router.
func (r *Router) Navigate(route Route) {
	r.mu.Lock()
	r.current = route
	listener := r.listener
	r.mu.Unlock()

	if listener != nil {
		listener(route)
	}
}

// SetListener registers fn to be called after every navigation. Passing nil
// removes the listener.
func (r *Router) SetListener(fn func(Route)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listener = fn
}
