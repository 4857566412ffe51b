package interview

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/ai-interviewer/internal/logger"
	"github.com/MKhiriev/ai-interviewer/models"
)

const testSessionID = 5

// fakeSource: источник сессии в памяти, отвечающий как сервер
type fakeSource struct {
	mu      sync.Mutex
	details models.SessionDetails
	loadErr error

	submits   atomic.Int32
	submitErr error
	// block, если задан, задерживает ответ SubmitAnswer до закрытия
	block chan struct{}
}

func newFakeSource(score *int, questions ...models.Question) *fakeSource {
	return &fakeSource{details: models.SessionDetails{
		Session:   &models.InterviewSession{ID: testSessionID, Role: "Backend", Level: "Junior", TotalScore: score},
		Questions: questions,
	}}
}

func (f *fakeSource) GetSession(_ context.Context, sessionID int64) (models.SessionDetails, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.loadErr != nil {
		return models.SessionDetails{}, f.loadErr
	}
	if sessionID != testSessionID {
		return models.SessionDetails{}, assert.AnError
	}
	return f.details, nil
}

func (f *fakeSource) SubmitAnswer(ctx context.Context, sessionID, questionID int64, answerText string) (models.Question, error) {
	f.submits.Add(1)
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return models.Question{}, ctx.Err()
		}
	}
	if f.submitErr != nil {
		return models.Question{}, f.submitErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, q := range f.details.Questions {
		if q.ID == questionID {
			q.AnswerText = &answerText
			q.AIFeedback = ptr("Solid answer")
			q.Score = ptr(15)
			return q, nil
		}
	}
	return models.Question{}, assert.AnError
}

// setQuestions имитирует изменения на сервере между загрузками
func (f *fakeSource) setQuestions(questions ...models.Question) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.details.Questions = questions
}

func ptr[T any](v T) *T { return &v }

func unanswered(id int64) models.Question {
	return models.Question{ID: id, SessionID: testSessionID, QuestionText: "question"}
}

func answered(id int64) models.Question {
	q := unanswered(id)
	q.AnswerText = ptr("answer")
	q.Score = ptr(10)
	return q
}

func newLoadedEngine(t *testing.T, src *fakeSource) *Engine {
	t.Helper()

	e := NewEngine(testSessionID, src, logger.Nop())
	_, err := e.Load(context.Background())
	require.NoError(t, err)
	return e
}

func answering(i int) State { return State{Phase: PhaseAnswering, Index: i} }
func reviewing(i int) State { return State{Phase: PhaseReviewing, Index: i} }

var completed = State{Phase: PhaseCompleted}

// ── initial index ───────────────────────────────────────────────────────────

func TestEngine_InitialState(t *testing.T) {
	tests := []struct {
		name      string
		score     *int
		questions []models.Question
		want      State
	}{
		{name: "nothing answered", questions: []models.Question{unanswered(1), unanswered(2)}, want: answering(0)},
		{name: "first unanswered in the middle", questions: []models.Question{answered(1), unanswered(2), unanswered(3)}, want: answering(1)},
		{name: "gap after answered", questions: []models.Question{answered(1), unanswered(2), answered(3)}, want: answering(1)},
		{name: "all answered, score pending", questions: []models.Question{answered(1), answered(2)}, want: reviewing(1)},
		{name: "scored", score: ptr(80), questions: []models.Question{answered(1), answered(2)}, want: completed},
		{name: "scored overrides unanswered", score: ptr(40), questions: []models.Question{answered(1), unanswered(2)}, want: completed},
		{name: "scored with no questions", score: ptr(0), want: completed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(testSessionID, newFakeSource(tt.score, tt.questions...), logger.Nop())
			assert.Equal(t, State{Phase: PhaseLoading}, e.Snapshot().State)

			snap, err := e.Load(context.Background())

			require.NoError(t, err)
			assert.Equal(t, tt.want, snap.State)
			assert.Equal(t, len(tt.questions), snap.Total())
		})
	}
}

func TestEngine_NoQuestionsStaysLoading(t *testing.T) {
	src := newFakeSource(nil)
	e := NewEngine(testSessionID, src, logger.Nop())

	snap, err := e.Load(context.Background())

	require.ErrorIs(t, err, ErrNoQuestions)
	assert.Equal(t, PhaseLoading, snap.State.Phase)

	// когда вопросы появятся, индекс вычисляется при следующей загрузке
	src.setQuestions(unanswered(1))
	snap, err = e.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, answering(0), snap.State)
}

func TestEngine_LoadErrorKeepsState(t *testing.T) {
	src := newFakeSource(nil, unanswered(1))
	src.loadErr = assert.AnError
	e := NewEngine(testSessionID, src, logger.Nop())

	snap, err := e.Load(context.Background())

	require.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, PhaseLoading, snap.State.Phase)
	_, ok := snap.Current()
	assert.False(t, ok)
}

// ── full walkthrough ────────────────────────────────────────────────────────

func TestEngine_TwoQuestionWalkthrough(t *testing.T) {
	ctx := context.Background()
	src := newFakeSource(nil, unanswered(1), unanswered(2))
	e := newLoadedEngine(t, src)

	assert.Equal(t, answering(0), e.Snapshot().State)

	require.NoError(t, e.SetDraft("first answer"))
	snap, err := e.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, reviewing(0), snap.State)
	q, ok := snap.Current()
	require.True(t, ok)
	assert.Equal(t, ptr("first answer"), q.AnswerText)
	assert.Equal(t, ptr("Solid answer"), q.AIFeedback)
	assert.Empty(t, snap.Draft)

	snap, err = e.Advance()
	require.NoError(t, err)
	assert.Equal(t, answering(1), snap.State)
	assert.True(t, snap.Last())

	require.NoError(t, e.SetDraft("second answer"))
	snap, err = e.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, reviewing(1), snap.State)

	snap, err = e.Advance()
	require.NoError(t, err)
	assert.Equal(t, completed, snap.State)
	assert.Equal(t, 100, snap.Progress())
	assert.Equal(t, int32(2), src.submits.Load())
}

// ── Submit ──────────────────────────────────────────────────────────────────

func TestEngine_SubmitReplacesOnlyActiveQuestion(t *testing.T) {
	src := newFakeSource(nil, answered(1), unanswered(2), unanswered(3))
	e := newLoadedEngine(t, src)
	before := e.Snapshot()

	require.NoError(t, e.SetDraft("middle"))
	after, err := e.Submit(context.Background())
	require.NoError(t, err)

	require.Len(t, after.Questions, 3)
	assert.Equal(t, before.Questions[0], after.Questions[0])
	assert.Equal(t, before.Questions[2], after.Questions[2])
	assert.Equal(t, ptr("middle"), after.Questions[1].AnswerText)

	// ранее выданный снимок не меняется
	assert.Nil(t, before.Questions[1].AnswerText)
}

func TestEngine_SubmitEmptyDraft(t *testing.T) {
	for _, draft := range []string{"", "   ", "\n\t"} {
		src := newFakeSource(nil, unanswered(1))
		e := newLoadedEngine(t, src)
		require.NoError(t, e.SetDraft(draft))

		snap, err := e.Submit(context.Background())

		require.ErrorIs(t, err, ErrEmptyAnswer)
		assert.Equal(t, answering(0), snap.State)
		assert.Equal(t, int32(0), src.submits.Load(), "пустой ответ не отправляется")
	}
}

func TestEngine_SubmitFailureKeepsDraft(t *testing.T) {
	src := newFakeSource(nil, unanswered(1), unanswered(2))
	src.submitErr = assert.AnError
	e := newLoadedEngine(t, src)
	require.NoError(t, e.SetDraft("my answer"))

	snap, err := e.Submit(context.Background())

	require.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, answering(0), snap.State)
	assert.Equal(t, "my answer", snap.Draft)
	assert.False(t, snap.Submitting)

	// повторная попытка проходит
	src.submitErr = nil
	snap, err = e.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, reviewing(0), snap.State)
}

func TestEngine_OneSubmissionInFlight(t *testing.T) {
	src := newFakeSource(nil, unanswered(1))
	src.block = make(chan struct{})
	e := newLoadedEngine(t, src)
	require.NoError(t, e.SetDraft("answer"))

	done := make(chan error, 1)
	go func() {
		_, err := e.Submit(context.Background())
		done <- err
	}()

	require.Eventually(t, func() bool { return e.Snapshot().Submitting }, time.Second, time.Millisecond)

	_, err := e.Submit(context.Background())
	require.ErrorIs(t, err, ErrSubmitInFlight)

	close(src.block)
	require.NoError(t, <-done)
	assert.Equal(t, int32(1), src.submits.Load())
	assert.Equal(t, reviewing(0), e.Snapshot().State)
}

func TestEngine_SubmitOutsideAnswering(t *testing.T) {
	e := newLoadedEngine(t, newFakeSource(nil, answered(1)))

	_, err := e.Submit(context.Background())

	assert.ErrorIs(t, err, ErrNotAnswering)
	assert.ErrorIs(t, e.SetDraft("x"), ErrNotAnswering)
}

// ── Advance ─────────────────────────────────────────────────────────────────

func TestEngine_AdvanceOutsideReviewing(t *testing.T) {
	e := newLoadedEngine(t, newFakeSource(nil, unanswered(1)))

	snap, err := e.Advance()

	require.ErrorIs(t, err, ErrNotReviewing)
	assert.Equal(t, answering(0), snap.State)
}

func TestEngine_AdvanceOntoAnsweredQuestion(t *testing.T) {
	src := newFakeSource(nil, unanswered(1), answered(2), unanswered(3))
	e := newLoadedEngine(t, src)

	require.NoError(t, e.SetDraft("a"))
	_, err := e.Submit(context.Background())
	require.NoError(t, err)

	snap, err := e.Advance()
	require.NoError(t, err)
	assert.Equal(t, reviewing(1), snap.State, "уже отвеченный вопрос открывается на просмотр")

	snap, err = e.Advance()
	require.NoError(t, err)
	assert.Equal(t, answering(2), snap.State)
}

func TestEngine_CompletedIsTerminal(t *testing.T) {
	e := newLoadedEngine(t, newFakeSource(ptr(90), answered(1)))

	_, err := e.Advance()
	assert.ErrorIs(t, err, ErrNotReviewing)
	_, err = e.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNotAnswering)
	assert.Equal(t, completed, e.Snapshot().State)
}

// ── frozen index ────────────────────────────────────────────────────────────

func TestEngine_RefreshDoesNotMoveIndex(t *testing.T) {
	src := newFakeSource(nil, unanswered(1), unanswered(2))
	e := newLoadedEngine(t, src)

	require.NoError(t, e.SetDraft("a"))
	_, err := e.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, reviewing(0), e.Snapshot().State)

	// сервер теперь считает первым неотвеченным вопрос 1
	src.setQuestions(answered(1), unanswered(2))
	snap, err := e.Refresh(context.Background())

	require.NoError(t, err)
	assert.Equal(t, reviewing(0), snap.State, "фоновая загрузка не перематывает вопрос")
	assert.True(t, snap.Questions[0].Answered())
}

func TestEngine_RefreshKeepsDraftAndIndexWhileAnswering(t *testing.T) {
	src := newFakeSource(nil, unanswered(1), unanswered(2))
	e := newLoadedEngine(t, src)
	require.NoError(t, e.SetDraft("half-written"))

	// ответ на первый вопрос пришёл с другого устройства
	src.setQuestions(answered(1), unanswered(2))
	snap, err := e.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, answering(0), snap.State)
	assert.Equal(t, "half-written", snap.Draft)
}

func TestEngine_ScoreAfterLoadDoesNotJumpToCompleted(t *testing.T) {
	src := newFakeSource(nil, answered(1), answered(2))
	e := newLoadedEngine(t, src)
	require.Equal(t, reviewing(1), e.Snapshot().State)

	src.mu.Lock()
	src.details.Session.TotalScore = ptr(75)
	src.mu.Unlock()

	snap, err := e.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, reviewing(1), snap.State)
	assert.Equal(t, ptr(75), snap.Session.TotalScore)

	snap, err = e.Advance()
	require.NoError(t, err)
	assert.Equal(t, completed, snap.State)
}

// ── snapshot helpers ────────────────────────────────────────────────────────

func TestSnapshot_Progress(t *testing.T) {
	qs := []models.Question{unanswered(1), unanswered(2), unanswered(3), unanswered(4)}

	assert.Equal(t, 0, Snapshot{State: State{Phase: PhaseLoading}, Questions: qs}.Progress())
	assert.Equal(t, 0, Snapshot{State: answering(0), Questions: qs}.Progress())
	assert.Equal(t, 50, Snapshot{State: reviewing(2), Questions: qs}.Progress())
	assert.Equal(t, 100, Snapshot{State: completed, Questions: qs}.Progress())
	assert.Equal(t, 0, Snapshot{State: answering(0)}.Progress())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "loading", State{Phase: PhaseLoading}.String())
	assert.Equal(t, "answering(2)", answering(2).String())
	assert.Equal(t, "reviewing(0)", reviewing(0).String())
	assert.Equal(t, "completed", completed.String())
	assert.Equal(t, "phase(9)", Phase(9).String())
}
