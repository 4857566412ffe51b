package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/ai-interviewer/internal/adapter"
	"github.com/MKhiriev/ai-interviewer/internal/cache"
	"github.com/MKhiriev/ai-interviewer/internal/logger"
	"github.com/MKhiriev/ai-interviewer/models"
)

type clientSessionService struct {
	adapter  adapter.ServerAdapter
	cache    *cache.Cache
	validate *validator.Validate
	logger   *logger.Logger
}

func NewClientSessionService(serverAdapter adapter.ServerAdapter, sessionCache *cache.Cache, logger *logger.Logger) ClientSessionService {
	return &clientSessionService{
		adapter:  serverAdapter,
		cache:    sessionCache,
		validate: newRequestValidator(),
		logger:   logger,
	}
}

func (s *clientSessionService) ListSessions(ctx context.Context) ([]models.InterviewSession, error) {
	return cache.Fetch(ctx, s.cache, cache.KeySessions, s.adapter.ListSessions)
}

func (s *clientSessionService) RefreshSessions(ctx context.Context) ([]models.InterviewSession, error) {
	s.cache.Invalidate(cache.KeySessions)
	return s.ListSessions(ctx)
}

func (s *clientSessionService) GetSession(ctx context.Context, sessionID int64) (models.SessionDetails, error) {
	return cache.Fetch(ctx, s.cache, cache.SessionKey(sessionID), func(ctx context.Context) (models.SessionDetails, error) {
		details, err := s.adapter.GetSession(ctx, sessionID)
		return details, mapAdapterError(err, ErrSessionNotFound)
	})
}

func (s *clientSessionService) RefreshSession(ctx context.Context, sessionID int64) (models.SessionDetails, error) {
	s.cache.Invalidate(cache.SessionKey(sessionID))
	return s.GetSession(ctx, sessionID)
}

func (s *clientSessionService) CreateSession(ctx context.Context, req models.CreateSessionRequest) (models.InterviewSession, error) {
	req.Role = strings.TrimSpace(req.Role)
	req.Level = strings.TrimSpace(req.Level)
	req.TechStack = cleanTechStack(req.TechStack)
	if err := validateRequest(s.validate, req); err != nil {
		return models.InterviewSession{}, err
	}

	session, err := s.adapter.CreateSession(ctx, req)
	if err != nil {
		s.logger.Err(err).Str("func", "clientSessionService.CreateSession").Msg("error creating session")
		return models.InterviewSession{}, err
	}

	s.cache.Invalidate(cache.KeySessions)
	s.logger.Info().Int64("session_id", session.ID).Msg("session created")

	return session, nil
}

func (s *clientSessionService) SubmitAnswer(ctx context.Context, sessionID, questionID int64, answerText string) (models.Question, error) {
	if strings.TrimSpace(answerText) == "" {
		return models.Question{}, fmt.Errorf("%w: answerText is required", ErrInvalidDataProvided)
	}

	question, err := s.adapter.SubmitAnswer(ctx, questionID, models.SubmitAnswerRequest{AnswerText: answerText})
	if err != nil {
		s.logger.Err(err).
			Str("func", "clientSessionService.SubmitAnswer").
			Int64("session_id", sessionID).
			Int64("question_id", questionID).
			Msg("error submitting answer")
		return models.Question{}, mapAdapterError(err, ErrQuestionNotFound)
	}

	s.cache.Invalidate(cache.SessionKey(sessionID))
	s.cache.Invalidate(cache.KeySessions)

	return question, nil
}

// cleanTechStack trims every entry and drops the empty ones.
func cleanTechStack(stack []string) []string {
	cleaned := make([]string, 0, len(stack))
	for _, tech := range stack {
		if tech = strings.TrimSpace(tech); tech != "" {
			cleaned = append(cleaned, tech)
		}
	}
	return cleaned
}
