package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/ai-interviewer/internal/config"
	"github.com/MKhiriev/ai-interviewer/internal/logger"
	"github.com/MKhiriev/ai-interviewer/internal/navigation"
	"github.com/MKhiriev/ai-interviewer/internal/service"
	"github.com/MKhiriev/ai-interviewer/internal/tui"
)

// UI is the interactive surface driven by [App].
type UI interface {
	Run(ctx context.Context) error
}

// App ties the restored session, the refresh job and the terminal UI into
// one process lifecycle.
type App struct {
	services  *service.ClientServices
	ui        UI
	navigator navigation.Navigator
	workers   config.ClientWorkers
	logger    *logger.Logger
}

func NewApp(services *service.ClientServices, ui UI, navigator navigation.Navigator, workers config.ClientWorkers, logger *logger.Logger) (*App, error) {
	if services == nil || ui == nil || navigator == nil {
		return nil, errors.New("client app: services, ui and navigator are required")
	}
	return &App{services: services, ui: ui, navigator: navigator, workers: workers, logger: logger}, nil
}

// Run restores the saved credential, picks the start route and blocks until
// the user leaves the UI. A Ctrl+C exit is not an error.
func (a *App) Run(ctx context.Context) error {
	user, err := a.services.AuthService.RestoreSession(ctx)
	switch {
	case err == nil:
		a.logger.Info().Int64("user_id", user.ID).Msg("session restored")
		a.navigator.Navigate(navigation.Landing())
	case errors.Is(err, service.ErrNotAuthenticated):
		a.logger.Info().Err(err).Msg("no usable credential, showing login")
		a.navigator.Navigate(navigation.Login())
	default:
		// the credential is still stored; the dashboard retries once the server is back
		a.logger.Warn().Err(err).Msg("could not verify credential")
		a.navigator.Navigate(navigation.Landing())
	}

	a.services.RefreshJob.Start(ctx, a.workers.RefreshInterval)
	defer a.services.RefreshJob.Stop()

	if err = a.ui.Run(ctx); err != nil {
		if errors.Is(err, tui.ErrUserQuit) {
			a.logger.Info().Msg("user quit")
			return nil
		}
		return fmt.Errorf("run ui: %w", err)
	}

	return nil
}
