package service

import (
	"context"

	"github.com/MKhiriev/ai-interviewer/internal/adapter"
	"github.com/MKhiriev/ai-interviewer/internal/cache"
	"github.com/MKhiriev/ai-interviewer/internal/logger"
	"github.com/MKhiriev/ai-interviewer/internal/navigation"
	"github.com/MKhiriev/ai-interviewer/internal/store"
)

type ClientServices struct {
	AuthService    ClientAuthService
	SessionService ClientSessionService
	RefreshJob     ClientRefreshJob
}

// NewClientServices wires the client services around one session cache. The
// cache is cleared every time a 401 revokes the stored credential.
func NewClientServices(
	storages *store.ClientStorages,
	serverAdapter adapter.ServerAdapter,
	sessionCache *cache.Cache,
	navigator navigation.Navigator,
	logger *logger.Logger,
) *ClientServices {
	serverAdapter.OnAuthExpired(func(ctx context.Context) {
		logger.Info().Str("func", "NewClientServices").Msg("credential expired, clearing session cache")
		sessionCache.Clear()
	})

	authSvc := NewClientAuthService(storages.CredentialStore, serverAdapter, sessionCache, navigator, logger)
	sessionSvc := NewClientSessionService(serverAdapter, sessionCache, logger)

	return &ClientServices{
		AuthService:    authSvc,
		SessionService: sessionSvc,
		RefreshJob:     NewClientRefreshJob(sessionSvc, storages.CredentialStore, logger),
	}
}
