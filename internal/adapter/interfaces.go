// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the interview backend.
//
// [RequestClient] is the single place where outbound calls are made: it
// attaches the stored bearer credential, validates response shapes, and turns
// an HTTP 401 into a forced sign-out. [ServerAdapter] exposes one typed method
// per REST operation on top of it.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrNotFound] for 404, [ErrAuthExpired] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/ai-interviewer/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines typed communication with the interview backend.
// Every method goes through [RequestClient.Do], so the bearer credential,
// the 401 handling and the response shape checks apply to all of them.
type ServerAdapter interface {
	// Register creates an account via POST /api/auth/register and returns
	// the new user together with the issued bearer token.
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error)

	// Login authenticates via POST /api/auth/login and returns the user
	// together with the issued bearer token.
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error)

	// CurrentUser resolves the owner of the stored credential via
	// GET /api/auth/me.
	CurrentUser(ctx context.Context) (models.User, error)

	// ListSessions returns every session of the current user via
	// GET /api/sessions.
	ListSessions(ctx context.Context) ([]models.InterviewSession, error)

	// CreateSession starts a new session via POST /api/sessions. The server
	// generates the questions before responding.
	CreateSession(ctx context.Context, req models.CreateSessionRequest) (models.InterviewSession, error)

	// GetSession returns a session with its questions in server order via
	// GET /api/sessions/:id.
	GetSession(ctx context.Context, sessionID int64) (models.SessionDetails, error)

	// SubmitAnswer answers one question via POST /api/questions/:id/answer
	// and returns the updated question carrying feedback and score.
	SubmitAnswer(ctx context.Context, questionID int64, req models.SubmitAnswerRequest) (models.Question, error)

	// OnAuthExpired registers fn to run each time a 401 revokes the stored
	// credential.
	OnAuthExpired(fn func(ctx context.Context))
}
