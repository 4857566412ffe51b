package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/ai-interviewer/internal/logger"
	"github.com/MKhiriev/ai-interviewer/internal/navigation"
	"github.com/MKhiriev/ai-interviewer/internal/service"
	"github.com/MKhiriev/ai-interviewer/models"
)

var ErrUserQuit = errors.New("вышел из программы")

// TUI runs the terminal client on top of the client services.
type TUI struct {
	services  *service.ClientServices
	router    *navigation.Router
	logger    *logger.Logger
	buildInfo models.AppBuildInfo
}

func New(services *service.ClientServices, router *navigation.Router, buildInfo models.AppBuildInfo, logger *logger.Logger) (*TUI, error) {
	if services == nil || router == nil {
		return nil, errors.New("tui: services and router are required")
	}
	return &TUI{services: services, router: router, logger: logger, buildInfo: buildInfo}, nil
}

// Run shows the current route of the router and blocks until the program
// exits. Quitting with Ctrl+C returns [ErrUserQuit].
func (t *TUI) Run(ctx context.Context) error {
	root := NewRootModel(ctx, t.services, t.router, t.logger, t.buildInfo, t.router.Current())
	program := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx))

	t.router.SetListener(func(route navigation.Route) {
		program.Send(NavigateTo{Route: route})
	})
	defer t.router.SetListener(nil)

	finalModel, runErr := program.Run()
	if runErr != nil {
		return runErr
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.quitByUser {
		return ErrUserQuit
	}

	return nil
}
