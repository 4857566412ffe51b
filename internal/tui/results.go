// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/ai-interviewer/internal/navigation"
	"github.com/MKhiriev/ai-interviewer/internal/service"
	"github.com/MKhiriev/ai-interviewer/models"
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

const statusTTL = 2 * time.Second

// ResultsModel shows the total score, the performance tier and the feedback
// of every question of a finished session.
type ResultsModel struct {
	ctx       context.Context
	sessions  service.ClientSessionService
	navigator navigation.Navigator
	sessionID int64

	details models.SessionDetails
	loaded  bool
	errMsg  string
	status  string
	spinner spinner.Model
}

func NewResultsModel(ctx context.Context, sessions service.ClientSessionService, navigator navigation.Navigator, sessionID int64) *ResultsModel {
	return &ResultsModel{
		ctx:       ctx,
		sessions:  sessions,
		navigator: navigator,
		sessionID: sessionID,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (m *ResultsModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.cmdLoad(false))
}

func (m *ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resultsLoadedMsg:
		m.loaded = true
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.details = msg.details
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.status = "Итоги скопированы в буфер обмена"
		return m, tea.Tick(statusTTL, func(time.Time) tea.Msg { return clearStatusMsg{} })

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case spinner.TickMsg:
		if m.loaded {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.esc):
			return m, navigate(m.navigator, navigation.Landing())
		case key.Matches(msg, keys.refresh):
			m.loaded = false
			return m, tea.Batch(m.spinner.Tick, m.cmdLoad(true))
		case key.Matches(msg, keys.copy):
			if m.details.Session == nil {
				return m, nil
			}
			text := resultsSummary(m.details)
			return m, func() tea.Msg {
				if err := writeClipboard(text); err != nil {
					return copiedMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
				}
				return copiedMsg{}
			}
		}
	}

	return m, nil
}

func (m *ResultsModel) View() string {
	var b strings.Builder

	switch {
	case !m.loaded:
		b.WriteString(m.spinner.View() + " Загрузка результатов...\n")
	case m.details.Session == nil:
	default:
		s := m.details.Session
		b.WriteString(fmt.Sprintf("%s · %s · %s\n\n", s.Role, s.Level, strings.Join(s.TechStack, ", ")))
		if s.InProgress() {
			b.WriteString("Итоговая оценка ещё не готова, нажмите r, чтобы обновить\n")
		} else {
			b.WriteString(fmt.Sprintf("Итог: %s  %s\n", scoreOrDash(s.TotalScore, 100), models.PerformanceTier(s.TotalScore)))
			b.WriteString(progressBar(*s.TotalScore, 30) + "\n")
		}
		if s.Summary != nil {
			b.WriteString("\n" + *s.Summary + "\n")
		}

		for i, q := range m.details.Questions {
			b.WriteString("\n")
			b.WriteString(titleStyle.Render(fmt.Sprintf("%d. %s", i+1, q.QuestionText)))
			b.WriteString("\n")
			writeReview(&b, q)
		}
	}

	if m.status != "" {
		b.WriteString("\n" + successStyle.Render(m.status) + "\n")
	}
	b.WriteString(renderError(m.errMsg))

	return renderPage("РЕЗУЛЬТАТЫ", strings.TrimRight(b.String(), "\n"), "c: копировать итоги │ r: обновить │ esc: к списку")
}

func (m *ResultsModel) cmdLoad(refresh bool) tea.Cmd {
	ctx, sessions, id := m.ctx, m.sessions, m.sessionID
	return func() tea.Msg {
		var (
			details models.SessionDetails
			err     error
		)
		if refresh {
			details, err = sessions.RefreshSession(ctx, id)
		} else {
			details, err = sessions.GetSession(ctx, id)
		}
		return resultsLoadedMsg{details: details, err: err}
	}
}

// resultsSummary renders a finished session as plain text for sharing.
func resultsSummary(d models.SessionDetails) string {
	var b strings.Builder

	s := d.Session
	b.WriteString(fmt.Sprintf("Interview: %s (%s)\n", s.Role, s.Level))
	if len(s.TechStack) > 0 {
		b.WriteString("Stack: " + strings.Join(s.TechStack, ", ") + "\n")
	}
	b.WriteString(fmt.Sprintf("Score: %s - %s\n", scoreOrDash(s.TotalScore, 100), models.PerformanceTier(s.TotalScore)))

	for i, q := range d.Questions {
		b.WriteString(fmt.Sprintf("\n%d. %s\n", i+1, q.QuestionText))
		b.WriteString(fmt.Sprintf("   Score: %s (%s)\n", scoreOrDash(q.Score, models.MaxQuestionScore), models.QuestionRating(q.Score)))
		if q.AIFeedback != nil {
			b.WriteString("   Feedback: " + *q.AIFeedback + "\n")
		}
	}

	return b.String()
}
