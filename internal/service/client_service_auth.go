package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/ai-interviewer/internal/adapter"
	"github.com/MKhiriev/ai-interviewer/internal/cache"
	"github.com/MKhiriev/ai-interviewer/internal/logger"
	"github.com/MKhiriev/ai-interviewer/internal/navigation"
	"github.com/MKhiriev/ai-interviewer/internal/store"
	"github.com/MKhiriev/ai-interviewer/internal/utils"
	"github.com/MKhiriev/ai-interviewer/models"
)

type clientAuthService struct {
	credentials store.CredentialStore
	adapter     adapter.ServerAdapter
	cache       *cache.Cache
	navigator   navigation.Navigator
	validate    *validator.Validate
	logger      *logger.Logger

	now func() time.Time
}

func NewClientAuthService(
	credentials store.CredentialStore,
	serverAdapter adapter.ServerAdapter,
	sessionCache *cache.Cache,
	navigator navigation.Navigator,
	logger *logger.Logger,
) ClientAuthService {
	return &clientAuthService{
		credentials: credentials,
		adapter:     serverAdapter,
		cache:       sessionCache,
		navigator:   navigator,
		validate:    newRequestValidator(),
		logger:      logger,
		now:         time.Now,
	}
}

func (a *clientAuthService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if err := validateRequest(a.validate, req); err != nil {
		return models.User{}, err
	}

	resp, err := a.adapter.Register(ctx, req)
	if err != nil {
		a.logger.Err(err).Str("func", "clientAuthService.Register").Msg("registration rejected")
		return models.User{}, err
	}

	return a.startSession(ctx, resp)
}

func (a *clientAuthService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := validateRequest(a.validate, req); err != nil {
		return models.User{}, err
	}

	resp, err := a.adapter.Login(ctx, req)
	if err != nil {
		a.logger.Err(err).Str("func", "clientAuthService.Login").Msg("login rejected")
		return models.User{}, err
	}

	return a.startSession(ctx, resp)
}

// startSession persists the credential of resp, seeds the cache with its user
// and moves to the landing surface.
func (a *clientAuthService) startSession(ctx context.Context, resp models.AuthResponse) (models.User, error) {
	if resp.User == nil || resp.Token == "" {
		return models.User{}, adapter.ErrInvalidResponse
	}

	cred := models.Credential{Token: resp.Token, UserID: resp.User.ID, SavedAt: a.now()}
	claims, err := utils.ParseTokenClaims(resp.Token)
	switch {
	case err != nil:
		a.logger.Debug().Str("func", "clientAuthService.startSession").Msg("token is opaque, storing without claims")
	default:
		if claims.UserID != 0 {
			cred.UserID = claims.UserID
		}
		cred.ExpiresAt = claims.ExpiresAt
	}

	if err = a.credentials.Save(ctx, cred); err != nil {
		a.logger.Err(err).Str("func", "clientAuthService.startSession").Msg("error saving credential")
		return models.User{}, fmt.Errorf("%w: %w", ErrSavingCredential, err)
	}

	user := *resp.User
	// entries of a previous account must not leak into this one
	a.cache.Clear()
	a.cache.Write(cache.KeyCurrentUser, user)

	a.logger.Info().Int64("user_id", user.ID).Msg("signed in")
	a.navigator.Navigate(navigation.Landing())

	return user, nil
}

func (a *clientAuthService) Logout(ctx context.Context) {
	if err := a.credentials.Clear(context.WithoutCancel(ctx)); err != nil {
		a.logger.Err(err).Str("func", "clientAuthService.Logout").Msg("error clearing credential")
	}
	a.cache.Clear()

	a.logger.Info().Msg("signed out")
	a.navigator.Navigate(navigation.Login())
}

func (a *clientAuthService) RestoreSession(ctx context.Context) (models.User, error) {
	cred, err := a.credentials.Load(ctx)
	if errors.Is(err, store.ErrCredentialNotFound) {
		return models.User{}, ErrNotAuthenticated
	}
	if err != nil {
		return models.User{}, fmt.Errorf("error loading credential: %w", err)
	}

	if cred.Expired(a.now()) {
		if _, err = a.credentials.Revoke(ctx, cred.Token); err != nil {
			a.logger.Err(err).Str("func", "clientAuthService.RestoreSession").Msg("error dropping expired credential")
		}
		return models.User{}, fmt.Errorf("%w: %w", ErrNotAuthenticated, ErrCredentialExpired)
	}

	user, err := a.CurrentUser(ctx)
	if errors.Is(err, adapter.ErrAuthExpired) {
		return models.User{}, fmt.Errorf("%w: %w", ErrNotAuthenticated, err)
	}
	if err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (a *clientAuthService) CurrentUser(ctx context.Context) (models.User, error) {
	return cache.Fetch(ctx, a.cache, cache.KeyCurrentUser, a.adapter.CurrentUser)
}
