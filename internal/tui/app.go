package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/ai-interviewer/internal/interview"
	"github.com/MKhiriev/ai-interviewer/internal/logger"
	"github.com/MKhiriev/ai-interviewer/internal/navigation"
	"github.com/MKhiriev/ai-interviewer/internal/service"
	"github.com/MKhiriev/ai-interviewer/models"
)

// RootModel is a TUI router:
// 1) keeps the page of the current route
// 2) handles global Ctrl+C quit
// 3) handles NavigateTo messages
// 4) delegates all other messages to the active page
type RootModel struct {
	ctx       context.Context
	services  *service.ClientServices
	navigator navigation.Navigator
	logger    *logger.Logger
	buildInfo models.AppBuildInfo

	route   navigation.Route
	current tea.Model

	quitByUser    bool
	showBuildInfo bool
}

// NewRootModel builds the page of start and keeps services for the pages
// opened later.
func NewRootModel(ctx context.Context, services *service.ClientServices, navigator navigation.Navigator,
	logger *logger.Logger, buildInfo models.AppBuildInfo, start navigation.Route) RootModel {
	r := RootModel{
		ctx:       ctx,
		services:  services,
		navigator: navigator,
		logger:    logger,
		buildInfo: buildInfo,
		route:     start,
	}
	r.current = r.pageFor(start)
	return r
}

func (r RootModel) Init() tea.Cmd {
	if r.current == nil {
		return nil
	}
	return r.current.Init()
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Global hotkey for every page.
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case keyMsg.Type == tea.KeyCtrlC:
			r.quitByUser = true
			return r, tea.Quit
		case key.Matches(keyMsg, keys.version):
			if r.route.Surface == navigation.SurfaceLogin {
				r.showBuildInfo = !r.showBuildInfo
				return r, nil
			}
		case key.Matches(keyMsg, keys.esc):
			if r.showBuildInfo {
				r.showBuildInfo = false
				return r, nil
			}
		}

		if r.showBuildInfo {
			return r, nil
		}
	}

	// Cross-page navigation.
	if nav, ok := msg.(NavigateTo); ok {
		if nav.Route == r.route && r.current != nil {
			return r, nil
		}

		next := r.pageFor(nav.Route)
		if next == nil {
			r.logger.Warn().Str("route", nav.Route.String()).Msg("no page for route")
			return r, nil
		}

		r.logger.Debug().Str("from", r.route.String()).Str("to", nav.Route.String()).Msg("page switched")
		r.showBuildInfo = false
		r.route = nav.Route
		r.current = next
		return r, r.current.Init()
	}

	if r.current == nil {
		return r, nil
	}

	updated, cmd := r.current.Update(msg)
	r.current = updated
	return r, cmd
}

func (r RootModel) View() string {
	if r.showBuildInfo {
		return renderBuildInfoWindow(r.buildInfo)
	}
	if r.current == nil {
		return renderPage("AI INTERVIEWER", "", "")
	}
	return r.current.View()
}

// pageFor builds a fresh page for route. Interview and results pages need a
// session id.
func (r RootModel) pageFor(route navigation.Route) tea.Model {
	switch route.Surface {
	case navigation.SurfaceLogin:
		return NewAuthModel(r.ctx, r.services.AuthService)
	case navigation.SurfaceLanding:
		return NewDashboardModel(r.ctx, r.services.AuthService, r.services.SessionService, r.navigator)
	case navigation.SurfaceInterview:
		if route.SessionID <= 0 {
			return nil
		}
		engine := interview.NewEngine(route.SessionID, r.services.SessionService, r.logger)
		return NewInterviewModel(r.ctx, engine, r.navigator)
	case navigation.SurfaceResults:
		if route.SessionID <= 0 {
			return nil
		}
		return NewResultsModel(r.ctx, r.services.SessionService, r.navigator, route.SessionID)
	default:
		return nil
	}
}

// navigate moves the client to route from inside a command. Navigator
// listeners send into the running program, which must not happen from
// Update.
func navigate(nav navigation.Navigator, route navigation.Route) tea.Cmd {
	return func() tea.Msg {
		nav.Navigate(route)
		return nil
	}
}
