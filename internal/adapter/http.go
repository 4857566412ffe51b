package adapter

import (
	"context"
	"strconv"

	"github.com/MKhiriev/ai-interviewer/internal/logger"
	"github.com/MKhiriev/ai-interviewer/models"
)

type httpServerAdapter struct {
	requests *RequestClient

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the HTTP/REST implementation of
// [ServerAdapter] on top of requests.
func NewHTTPServerAdapter(requests *RequestClient, logger *logger.Logger) ServerAdapter {
	return &httpServerAdapter{requests: requests, logger: logger}
}

// Register implements [ServerAdapter]. It POSTs req to
// POST /api/auth/register and expects 201 {user, token}.
func (h *httpServerAdapter) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := h.requests.Do(ctx, EndpointRegister, RequestOptions{Body: req, RequireBody: true}, &resp); err != nil {
		return models.AuthResponse{}, err
	}

	return resp, nil
}

// Login implements [ServerAdapter]. It POSTs req to POST /api/auth/login.
// Wrong credentials come back as a 401 [RequestError] carrying the server
// message.
func (h *httpServerAdapter) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := h.requests.Do(ctx, EndpointLogin, RequestOptions{Body: req, RequireBody: true}, &resp); err != nil {
		return models.AuthResponse{}, err
	}

	return resp, nil
}

// CurrentUser implements [ServerAdapter].
func (h *httpServerAdapter) CurrentUser(ctx context.Context) (models.User, error) {
	var resp models.CurrentUserResponse
	if err := h.requests.Do(ctx, EndpointCurrentUser, RequestOptions{RequireBody: true}, &resp); err != nil {
		return models.User{}, err
	}
	if resp.User == nil {
		return models.User{}, ErrInvalidResponse
	}

	return *resp.User, nil
}

// ListSessions implements [ServerAdapter].
func (h *httpServerAdapter) ListSessions(ctx context.Context) ([]models.InterviewSession, error) {
	sessions := make([]models.InterviewSession, 0)
	if err := h.requests.Do(ctx, EndpointListSessions, RequestOptions{}, &sessions); err != nil {
		return nil, err
	}

	return sessions, nil
}

// CreateSession implements [ServerAdapter].
func (h *httpServerAdapter) CreateSession(ctx context.Context, req models.CreateSessionRequest) (models.InterviewSession, error) {
	var session models.InterviewSession
	if err := h.requests.Do(ctx, EndpointCreateSession, RequestOptions{Body: req, RequireBody: true}, &session); err != nil {
		return models.InterviewSession{}, err
	}

	return session, nil
}

// GetSession implements [ServerAdapter].
func (h *httpServerAdapter) GetSession(ctx context.Context, sessionID int64) (models.SessionDetails, error) {
	var details models.SessionDetails
	opts := RequestOptions{PathParams: idParam(sessionID), RequireBody: true}
	if err := h.requests.Do(ctx, EndpointGetSession, opts, &details); err != nil {
		return models.SessionDetails{}, err
	}

	return details, nil
}

// SubmitAnswer implements [ServerAdapter].
func (h *httpServerAdapter) SubmitAnswer(ctx context.Context, questionID int64, req models.SubmitAnswerRequest) (models.Question, error) {
	var question models.Question
	opts := RequestOptions{Body: req, PathParams: idParam(questionID), RequireBody: true}
	if err := h.requests.Do(ctx, EndpointSubmitAnswer, opts, &question); err != nil {
		return models.Question{}, err
	}

	return question, nil
}

// OnAuthExpired implements [ServerAdapter].
func (h *httpServerAdapter) OnAuthExpired(fn func(ctx context.Context)) {
	h.requests.OnAuthExpired(fn)
}

func idParam(id int64) map[string]string {
	return map[string]string{"id": strconv.FormatInt(id, 10)}
}
