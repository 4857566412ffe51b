// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package interview drives one open session question by question.
//
// The active index is computed once, on the first successful [Engine.Load].
// Later loads replace the displayed data only, so a background refetch never
// moves the user away from the question they are looking at; the index
// changes solely through [Engine.Submit] and [Engine.Advance].
package interview

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/MKhiriev/ai-interviewer/internal/logger"
	"github.com/MKhiriev/ai-interviewer/models"
)

// Source is where the engine reads the session from and sends answers to.
type Source interface {
	GetSession(ctx context.Context, sessionID int64) (models.SessionDetails, error)
	SubmitAnswer(ctx context.Context, sessionID, questionID int64, answerText string) (models.Question, error)
}

// Engine is the state machine of one session. It is safe for concurrent use.
type Engine struct {
	sessionID int64
	source    Source
	logger    *logger.Logger

	mu         sync.Mutex
	state      State
	indexFixed bool
	session    models.InterviewSession
	questions  []models.Question
	draft      string
	submitting bool
}

func NewEngine(sessionID int64, source Source, logger *logger.Logger) *Engine {
	return &Engine{
		sessionID: sessionID,
		source:    source,
		logger:    logger,
		state:     State{Phase: PhaseLoading},
	}
}

// SessionID returns the session the engine drives.
func (e *Engine) SessionID() int64 {
	return e.sessionID
}

// Load fetches the session. The first successful load picks the state:
//   - a session with a total score is Completed whatever its answers;
//   - otherwise the first unanswered question is Answering;
//   - with every question answered the last one is Reviewing.
//
// A session without questions and without a score yields ErrNoQuestions and
// the engine stays Loading. On error the previous data is kept.
func (e *Engine) Load(ctx context.Context) (Snapshot, error) {
	details, err := e.source.GetSession(ctx, e.sessionID)
	if err != nil {
		e.logger.Err(err).Str("func", "Engine.Load").Int64("session_id", e.sessionID).Msg("error loading session")
		return e.Snapshot(), err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if details.Session != nil {
		e.session = *details.Session
	}
	e.questions = slices.Clone(details.Questions)

	if e.indexFixed {
		return e.snapshotLocked(), nil
	}

	if details.Session != nil && details.Session.TotalScore != nil {
		e.setStateLocked(State{Phase: PhaseCompleted})
		return e.snapshotLocked(), nil
	}

	if len(e.questions) == 0 {
		return e.snapshotLocked(), ErrNoQuestions
	}

	idx := slices.IndexFunc(e.questions, func(q models.Question) bool { return !q.Answered() })
	if idx >= 0 {
		e.setStateLocked(State{Phase: PhaseAnswering, Index: idx})
	} else {
		// scoring not finalised yet
		e.setStateLocked(State{Phase: PhaseReviewing, Index: len(e.questions) - 1})
	}

	return e.snapshotLocked(), nil
}

// Refresh reloads the session without moving the active index. It is Load
// under the name the UI uses for background refetches.
func (e *Engine) Refresh(ctx context.Context) (Snapshot, error) {
	return e.Load(ctx)
}

// SetDraft replaces the draft answer of the active question.
func (e *Engine) SetDraft(text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Phase != PhaseAnswering {
		return ErrNotAnswering
	}
	e.draft = text
	return nil
}

// Submit sends the draft of the active question and blocks until the server
// answers.
//
// On success the active question is replaced by the server's version, the
// draft is cleared and the state becomes Reviewing on the same index. On
// failure the state and the draft are kept so the user can retry. Only one
// submission may be outstanding; a concurrent call gets ErrSubmitInFlight.
func (e *Engine) Submit(ctx context.Context) (Snapshot, error) {
	e.mu.Lock()
	if e.state.Phase != PhaseAnswering {
		e.mu.Unlock()
		return e.Snapshot(), ErrNotAnswering
	}
	if e.submitting {
		e.mu.Unlock()
		return e.Snapshot(), ErrSubmitInFlight
	}
	if strings.TrimSpace(e.draft) == "" {
		e.mu.Unlock()
		return e.Snapshot(), ErrEmptyAnswer
	}

	idx := e.state.Index
	if idx >= len(e.questions) {
		e.mu.Unlock()
		return e.Snapshot(), ErrSessionNotReady
	}
	questionID := e.questions[idx].ID
	draft := e.draft
	e.submitting = true
	e.mu.Unlock()

	updated, err := e.source.SubmitAnswer(ctx, e.sessionID, questionID, draft)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.submitting = false

	if err != nil {
		e.logger.Err(err).
			Str("func", "Engine.Submit").
			Int64("session_id", e.sessionID).
			Int64("question_id", questionID).
			Msg("error submitting answer")
		return e.snapshotLocked(), err
	}

	// a refresh may have replaced the slice meanwhile; it is never mutated
	// in place because snapshots share it
	questions := slices.Clone(e.questions)
	if pos := slices.IndexFunc(questions, func(q models.Question) bool { return q.ID == questionID }); pos >= 0 {
		questions[pos] = updated
	}
	e.questions = questions
	e.draft = ""
	e.setStateLocked(State{Phase: PhaseReviewing, Index: idx})

	return e.snapshotLocked(), nil
}

// Advance leaves the reviewed question. The next question becomes active,
// Answering or, if the server already holds its answer, Reviewing. After the
// last question the session is Completed.
func (e *Engine) Advance() (Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Phase != PhaseReviewing {
		return e.snapshotLocked(), ErrNotReviewing
	}

	next := e.state.Index + 1
	switch {
	case next >= len(e.questions):
		e.setStateLocked(State{Phase: PhaseCompleted})
	case e.questions[next].Answered():
		e.setStateLocked(State{Phase: PhaseReviewing, Index: next})
	default:
		e.setStateLocked(State{Phase: PhaseAnswering, Index: next})
	}
	e.draft = ""

	return e.snapshotLocked(), nil
}

// Snapshot returns the current state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() Snapshot {
	return Snapshot{
		State:      e.state,
		Session:    e.session,
		Questions:  e.questions,
		Draft:      e.draft,
		Submitting: e.submitting,
	}
}

func (e *Engine) setStateLocked(s State) {
	if e.state != s {
		e.logger.Debug().
			Int64("session_id", e.sessionID).
			Str("from", e.state.String()).
			Str("to", s.String()).
			Msg("interview state changed")
	}
	e.state = s
	e.indexFixed = true
}
