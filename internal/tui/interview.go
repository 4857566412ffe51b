package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/ai-interviewer/internal/interview"
	"github.com/MKhiriev/ai-interviewer/internal/navigation"
	"github.com/MKhiriev/ai-interviewer/models"
)

// InterviewModel presents one session question by question. Every state
// change goes through the [interview.Engine]; the model renders its
// snapshots.
type InterviewModel struct {
	ctx       context.Context
	engine    *interview.Engine
	navigator navigation.Navigator

	snap    interview.Snapshot
	loaded  bool
	errMsg  string
	editor  textarea.Model
	spinner spinner.Model
}

func NewInterviewModel(ctx context.Context, engine *interview.Engine, navigator navigation.Navigator) *InterviewModel {
	editor := textarea.New()
	editor.Placeholder = "Ваш ответ..."
	editor.CharLimit = 8000
	editor.SetWidth(72)
	editor.SetHeight(8)
	editor.ShowLineNumbers = false

	return &InterviewModel{
		ctx:       ctx,
		engine:    engine,
		navigator: navigator,
		snap:      engine.Snapshot(),
		editor:    editor,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (m *InterviewModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.cmdLoad())
}

func (m *InterviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case engineMsg:
		return m, m.apply(msg)

	case spinner.TickMsg:
		if m.loaded && !m.snap.Submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m *InterviewModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.esc) {
		return m, navigate(m.navigator, navigation.Landing())
	}

	switch m.snap.State.Phase {
	case interview.PhaseAnswering:
		if key.Matches(msg, keys.submit) {
			if m.snap.Submitting {
				return m, nil
			}
			if err := m.engine.SetDraft(m.editor.Value()); err != nil {
				m.errMsg = humanizeError(err)
				return m, nil
			}
			m.errMsg = ""
			m.snap.Submitting = true
			m.editor.Blur()
			return m, tea.Batch(m.spinner.Tick, m.cmdSubmit())
		}
		if m.snap.Submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd

	case interview.PhaseReviewing:
		if key.Matches(msg, keys.enter) {
			snap, err := m.engine.Advance()
			return m, m.apply(engineMsg{snapshot: snap, err: err})
		}

	case interview.PhaseLoading:
		if key.Matches(msg, keys.refresh) {
			m.errMsg = ""
			return m, tea.Batch(m.spinner.Tick, m.cmdLoad())
		}
	}

	return m, nil
}

// apply takes over the snapshot of an engine call and returns the follow-up
// command, if any.
func (m *InterviewModel) apply(msg engineMsg) tea.Cmd {
	prevPhase, prevIndex := m.snap.State.Phase, m.snap.State.Index
	m.snap = msg.snapshot
	m.loaded = m.loaded || msg.snapshot.State.Phase != interview.PhaseLoading

	if msg.err != nil {
		m.errMsg = humanizeError(msg.err)
		if errors.Is(msg.err, interview.ErrNoQuestions) {
			m.errMsg = "Вопросы ещё не готовы, нажмите r, чтобы обновить"
		}
	} else {
		m.errMsg = ""
	}

	if m.snap.State.Phase == interview.PhaseCompleted {
		return navigate(m.navigator, navigation.Results(m.engine.SessionID()))
	}

	// a new question becomes active: start from an empty editor
	if m.snap.State.Phase == interview.PhaseAnswering && (prevPhase != interview.PhaseAnswering || prevIndex != m.snap.State.Index) {
		m.editor.SetValue(m.snap.Draft)
	}
	if m.snap.State.Phase == interview.PhaseAnswering && !m.snap.Submitting {
		return m.editor.Focus()
	}
	return nil
}

func (m *InterviewModel) View() string {
	var b strings.Builder

	s := m.snap.Session
	if s.Role != "" {
		b.WriteString(fmt.Sprintf("%s · %s\n", s.Role, s.Level))
	}

	q, ok := m.snap.Current()
	switch {
	case !ok && !m.loaded:
		b.WriteString(m.spinner.View() + " Загрузка интервью...\n")
	case !ok:
		b.WriteString("Нет активного вопроса\n")
	default:
		b.WriteString(fmt.Sprintf("Вопрос %d из %d  %s\n\n", m.snap.State.Index+1, m.snap.Total(), progressBar(m.snap.Progress(), 20)))
		b.WriteString(boxStyle.Render(q.QuestionText))
		b.WriteString("\n\n")

		if m.snap.State.Phase == interview.PhaseAnswering {
			b.WriteString(m.editor.View())
			b.WriteString("\n")
			if m.snap.Submitting {
				b.WriteString(m.spinner.View() + " ИИ оценивает ответ...\n")
			}
		} else {
			writeReview(&b, q)
		}
	}

	b.WriteString(renderError(m.errMsg))

	return renderPage("ИНТЕРВЬЮ", strings.TrimRight(b.String(), "\n"), m.hotKeys())
}

func (m *InterviewModel) hotKeys() string {
	switch m.snap.State.Phase {
	case interview.PhaseAnswering:
		return "ctrl+s: отправить │ esc: к списку"
	case interview.PhaseReviewing:
		if m.snap.Last() {
			return "enter: к результатам │ esc: к списку"
		}
		return "enter: следующий вопрос │ esc: к списку"
	default:
		return "r: обновить │ esc: к списку"
	}
}

func writeReview(b *strings.Builder, q models.Question) {
	b.WriteString("Ваш ответ:\n")
	b.WriteString(valueOrDash(q.AnswerText))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Оценка: %s (%s)\n", scoreOrDash(q.Score, models.MaxQuestionScore), models.QuestionRating(q.Score)))
	b.WriteString("Отзыв ИИ:\n")
	b.WriteString(valueOrDash(q.AIFeedback))
	b.WriteString("\n")
}

func (m *InterviewModel) cmdLoad() tea.Cmd {
	ctx, engine := m.ctx, m.engine
	return func() tea.Msg {
		snap, err := engine.Load(ctx)
		return engineMsg{snapshot: snap, err: err}
	}
}

func (m *InterviewModel) cmdSubmit() tea.Cmd {
	ctx, engine := m.ctx, m.engine
	return func() tea.Msg {
		snap, err := engine.Submit(ctx)
		return engineMsg{snapshot: snap, err: err}
	}
}
