package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/ai-interviewer/internal/navigation"
	"github.com/MKhiriev/ai-interviewer/internal/service"
	"github.com/MKhiriev/ai-interviewer/models"
)

const (
	createRole = iota
	createLevel
	createStack
)

// DashboardModel lists the sessions of the signed-in user and hosts the
// form that starts a new one.
type DashboardModel struct {
	ctx       context.Context
	auth      service.ClientAuthService
	sessions  service.ClientSessionService
	navigator navigation.Navigator

	user     models.User
	items    []models.InterviewSession
	idx      int
	loading  bool
	errMsg   string
	spinner  spinner.Model
	creating bool
	pending  bool
	form     []textinput.Model
	focus    int
}

func NewDashboardModel(ctx context.Context, auth service.ClientAuthService, sessions service.ClientSessionService, navigator navigation.Navigator) *DashboardModel {
	form := make([]textinput.Model, 3)
	for i, placeholder := range []string{"Backend Engineer", "Junior / Middle / Senior", "Go, PostgreSQL, Kafka"} {
		form[i] = textinput.New()
		form[i].Placeholder = placeholder
		form[i].CharLimit = 128
		form[i].Width = 40
	}

	return &DashboardModel{
		ctx:       ctx,
		auth:      auth,
		sessions:  sessions,
		navigator: navigator,
		loading:   true,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		form:      form,
	}
}

func (m *DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.cmdLoadUser(), m.cmdLoadSessions(false))
}

func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case userLoadedMsg:
		if msg.err == nil {
			m.user = msg.user
		}
		return m, nil

	case sessionsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.items = msg.sessions
		if m.idx >= len(m.items) {
			m.idx = max(len(m.items)-1, 0)
		}
		return m, nil

	case sessionCreatedMsg:
		m.pending = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.closeForm()
		return m, navigate(m.navigator, navigation.Interview(msg.session.ID))

	case spinner.TickMsg:
		if !m.loading && !m.pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.creating {
			return m.updateForm(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

func (m *DashboardModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.items)-1 {
			m.idx++
		}
	case key.Matches(msg, keys.enter):
		if len(m.items) == 0 {
			return m, nil
		}
		selected := m.items[m.idx]
		if selected.InProgress() {
			return m, navigate(m.navigator, navigation.Interview(selected.ID))
		}
		return m, navigate(m.navigator, navigation.Results(selected.ID))
	case key.Matches(msg, keys.newItem):
		m.openForm()
		return m, textinput.Blink
	case key.Matches(msg, keys.refresh):
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.cmdLoadSessions(true))
	case key.Matches(msg, keys.logout):
		ctx, auth := m.ctx, m.auth
		return m, func() tea.Msg {
			auth.Logout(ctx)
			return nil
		}
	}

	return m, nil
}

func (m *DashboardModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		if !m.pending {
			m.closeForm()
		}
		return m, nil
	case key.Matches(msg, keys.tab):
		m.focusForm((m.focus + 1) % len(m.form))
		return m, nil
	case key.Matches(msg, keys.backtab):
		m.focusForm((m.focus - 1 + len(m.form)) % len(m.form))
		return m, nil
	case key.Matches(msg, keys.enter):
		if m.pending {
			return m, nil
		}
		m.errMsg = ""
		m.pending = true
		return m, tea.Batch(m.spinner.Tick, m.cmdCreate(models.CreateSessionRequest{
			Role:      m.form[createRole].Value(),
			Level:     m.form[createLevel].Value(),
			TechStack: strings.Split(m.form[createStack].Value(), ","),
		}))
	}

	var cmd tea.Cmd
	m.form[m.focus], cmd = m.form[m.focus].Update(msg)
	return m, cmd
}

func (m *DashboardModel) View() string {
	if m.creating {
		return m.viewForm()
	}

	var b strings.Builder
	if m.user.Email != "" {
		name := m.user.Name
		if name == "" {
			name = m.user.Email
		}
		b.WriteString("Пользователь: " + name + "\n\n")
	}

	switch {
	case m.loading && len(m.items) == 0:
		b.WriteString(m.spinner.View() + " Загрузка сессий...\n")
	case len(m.items) == 0:
		b.WriteString("Сессий пока нет. Нажмите n, чтобы начать интервью.\n")
	default:
		completed, average, best := models.SessionStats(m.items)
		b.WriteString(fmt.Sprintf("Завершено: %d │ Средний балл: %d/100 │ Лучший: %d/100\n\n", completed, average, best))
		b.WriteString(fmt.Sprintf("  %-4s │ %-24s │ %-10s │ %-12s │ %s\n", "ID", "Роль", "Уровень", "Статус", "Оценка"))
		b.WriteString("───────┼──────────────────────────┼────────────┼──────────────┼────────\n")
		for i, s := range m.items {
			cursor := " "
			if i == m.idx {
				cursor = cursorStyle.Render(">")
			}
			status := "в процессе"
			if !s.InProgress() {
				status = "завершена"
			}
			b.WriteString(fmt.Sprintf("%s %-4d │ %-24s │ %-10s │ %-12s │ %s\n",
				cursor, s.ID, fitText(s.Role, 24), fitText(s.Level, 10), status, scoreOrDash(s.TotalScore, 100)))
		}
		if m.loading {
			b.WriteString("\n" + m.spinner.View() + " Обновление...\n")
		}
	}

	b.WriteString(renderError(m.errMsg))

	return renderPage("ИНТЕРВЬЮ", strings.TrimRight(b.String(), "\n"),
		"enter: открыть │ n: новое │ r: обновить │ l: выйти │ ↑/↓: навигация")
}

func (m *DashboardModel) viewForm() string {
	var b strings.Builder
	labels := []string{"Роль    ", "Уровень ", "Стек    "}
	for i, label := range labels {
		b.WriteString(label + "│ [")
		b.WriteString(m.form[i].View())
		b.WriteString("]\n")
	}

	if m.pending {
		b.WriteString("\n" + m.spinner.View() + " Генерация вопросов...\n")
	} else {
		b.WriteString("\n[Начать]\n")
	}
	b.WriteString(renderError(m.errMsg))

	return renderPage("НОВОЕ ИНТЕРВЬЮ", strings.TrimRight(b.String(), "\n"),
		"enter: начать │ tab: след. поле │ esc: назад │ стек через запятую")
}

func (m *DashboardModel) openForm() {
	m.creating = true
	m.errMsg = ""
	for i := range m.form {
		m.form[i].SetValue("")
	}
	m.focusForm(createRole)
}

func (m *DashboardModel) closeForm() {
	m.creating = false
	m.form[m.focus].Blur()
}

func (m *DashboardModel) focusForm(idx int) {
	m.form[m.focus].Blur()
	m.focus = idx
	m.form[m.focus].Focus()
}

func (m *DashboardModel) cmdLoadUser() tea.Cmd {
	ctx, auth := m.ctx, m.auth
	return func() tea.Msg {
		user, err := auth.CurrentUser(ctx)
		return userLoadedMsg{user: user, err: err}
	}
}

func (m *DashboardModel) cmdLoadSessions(refresh bool) tea.Cmd {
	ctx, sessions := m.ctx, m.sessions
	return func() tea.Msg {
		var (
			items []models.InterviewSession
			err   error
		)
		if refresh {
			items, err = sessions.RefreshSessions(ctx)
		} else {
			items, err = sessions.ListSessions(ctx)
		}
		return sessionsLoadedMsg{sessions: items, err: err}
	}
}

func (m *DashboardModel) cmdCreate(req models.CreateSessionRequest) tea.Cmd {
	ctx, sessions := m.ctx, m.sessions
	return func() tea.Msg {
		session, err := sessions.CreateSession(ctx, req)
		return sessionCreatedMsg{session: session, err: err}
	}
}
