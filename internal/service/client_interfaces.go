package service

import (
	"context"
	"time"

	"github.com/MKhiriev/ai-interviewer/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// ClientAuthService defines the client-side contract for the credential
// lifecycle: obtaining a bearer token, keeping it between runs and dropping it.
type ClientAuthService interface {
	// Register creates an account on the server. On success the issued
	// credential is stored, the returned user is cached as the current user
	// and the client moves to the landing surface.
	// The request is validated locally first; nothing is sent for invalid
	// input. On failure neither the store nor the cache is touched.
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)

	// Login authenticates against the server with the same side effects as
	// Register.
	Login(ctx context.Context, req models.LoginRequest) (models.User, error)

	// Logout clears the stored credential and every cached entry, then moves
	// the client to the login surface. It never contacts the server and never
	// fails; storage errors are only logged.
	Logout(ctx context.Context)

	// RestoreSession resumes a previous run. It loads the stored credential,
	// drops it locally when its expiry has visibly passed, and otherwise
	// resolves the current user through the cache.
	// Returns ErrNotAuthenticated when there is no usable credential.
	RestoreSession(ctx context.Context) (models.User, error)

	// CurrentUser returns the owner of the stored credential, read through
	// the cache.
	CurrentUser(ctx context.Context) (models.User, error)
}

// ClientSessionService defines the client-side contract for interview data.
// Reads go through the session cache; writes invalidate the entries they
// make stale.
type ClientSessionService interface {
	// ListSessions returns the sessions of the current user.
	ListSessions(ctx context.Context) ([]models.InterviewSession, error)

	// RefreshSessions drops the cached session list and fetches it again.
	RefreshSessions(ctx context.Context) ([]models.InterviewSession, error)

	// GetSession returns a session with its questions.
	// Returns ErrSessionNotFound (wrapped) for an unknown session.
	GetSession(ctx context.Context, sessionID int64) (models.SessionDetails, error)

	// RefreshSession drops the cached session and fetches it again.
	RefreshSession(ctx context.Context, sessionID int64) (models.SessionDetails, error)

	// CreateSession validates req, asks the server to generate a new session
	// and invalidates the cached session list.
	CreateSession(ctx context.Context, req models.CreateSessionRequest) (models.InterviewSession, error)

	// SubmitAnswer sends answerText for questionID of sessionID. On success the
	// cached session and the session list are invalidated and the updated
	// question is returned.
	SubmitAnswer(ctx context.Context, sessionID, questionID int64, answerText string) (models.Question, error)
}

// ClientRefreshJob defines the contract for a background worker that keeps
// the cached session list warm while the client runs.
type ClientRefreshJob interface {
	// Start launches the background goroutine. It refreshes every interval,
	// defaulting to one minute if interval is zero or negative. Any
	// previously running job is stopped before the new one begins.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it has
	// fully terminated.
	Stop()
}
