// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/ai-interviewer/internal/service"
	"github.com/MKhiriev/ai-interviewer/models"
)

type authMode int

const (
	modeLogin authMode = iota
	modeRegister
)

const (
	fieldName = iota
	fieldEmail
	fieldPassword
)

// AuthModel is the Bubble Tea model of the login surface. It holds one form
// that switches between login (email, password) and registration (name,
// email, password). On success the auth service moves the client to the
// dashboard itself; the model only reports failures.
type AuthModel struct {
	ctx  context.Context
	auth service.ClientAuthService

	mode       authMode
	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
}

// NewAuthModel creates an [AuthModel] in login mode with the email field
// focused.
func NewAuthModel(ctx context.Context, auth service.ClientAuthService) *AuthModel {
	fields := make([]textinput.Model, 3)

	fields[fieldName] = textinput.New()
	fields[fieldName].Placeholder = "name"
	fields[fieldName].CharLimit = 64
	fields[fieldName].Width = 40

	fields[fieldEmail] = textinput.New()
	fields[fieldEmail].Placeholder = "email"
	fields[fieldEmail].CharLimit = 254
	fields[fieldEmail].Width = 40

	fields[fieldPassword] = textinput.New()
	fields[fieldPassword].Placeholder = "password"
	fields[fieldPassword].CharLimit = 256
	fields[fieldPassword].Width = 40
	fields[fieldPassword].EchoMode = textinput.EchoPassword
	fields[fieldPassword].EchoCharacter = '*'

	m := &AuthModel{ctx: ctx, auth: auth, inputs: fields}
	m.setFocus(fieldEmail)
	return m
}

// Init implements [tea.Model]. Starts the cursor-blink animation for the active input.
func (m *AuthModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements [tea.Model]. Handled messages:
//   - authResultMsg: clears submitting state; on error, populates errMsg.
//   - ctrl+r: switches between login and registration.
//   - tab/shift+tab: moves focus between the visible inputs.
//   - enter: dispatches the async login or registration command.
//
// All other key events are forwarded to the focused input widget.
func (m *AuthModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(authResultMsg); ok {
		m.submitting = false
		m.errMsg = humanizeError(result.err)
		if result.err == nil {
			m.inputs[fieldPassword].SetValue("")
		}
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.switchTab):
			m.toggleMode()
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.moveFocus(1)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.moveFocus(-1)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.submitting {
				return m, nil
			}
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// View implements [tea.Model].
func (m *AuthModel) View() string {
	var b strings.Builder

	b.WriteString("Поле    │ Значение\n")
	b.WriteString("────────┼────────────────────────────────────────────\n")
	if m.mode == modeRegister {
		b.WriteString("Имя     │ [")
		b.WriteString(m.inputs[fieldName].View())
		b.WriteString("]\n")
	}
	b.WriteString("Email   │ [")
	b.WriteString(m.inputs[fieldEmail].View())
	b.WriteString("]\n")
	b.WriteString("Пароль  │ [")
	b.WriteString(m.inputs[fieldPassword].View())
	b.WriteString("]\n")

	action := "Войти"
	if m.mode == modeRegister {
		action = "Зарегистрироваться"
	}
	if m.submitting {
		action += "..."
	}
	b.WriteString("\n[" + action + "]\n")
	b.WriteString(renderError(m.errMsg))

	title, other := "ВХОД", "регистрация"
	if m.mode == modeRegister {
		title, other = "РЕГИСТРАЦИЯ", "вход"
	}

	return renderPage(title, strings.TrimRight(b.String(), "\n"),
		"enter: подтвердить │ tab: след. поле │ ctrl+r: "+other+" │ f1: версия")
}

func (m *AuthModel) submit() tea.Cmd {
	email := m.inputs[fieldEmail].Value()
	password := m.inputs[fieldPassword].Value()
	if strings.TrimSpace(email) == "" || password == "" {
		m.errMsg = "Email и пароль обязательны"
		return nil
	}

	m.errMsg = ""
	m.submitting = true

	ctx, auth := m.ctx, m.auth
	if m.mode == modeRegister {
		req := models.RegisterRequest{Name: m.inputs[fieldName].Value(), Email: email, Password: password}
		return func() tea.Msg {
			_, err := auth.Register(ctx, req)
			return authResultMsg{err: err}
		}
	}

	req := models.LoginRequest{Email: email, Password: password}
	return func() tea.Msg {
		_, err := auth.Login(ctx, req)
		return authResultMsg{err: err}
	}
}

func (m *AuthModel) toggleMode() {
	m.errMsg = ""
	if m.mode == modeLogin {
		m.mode = modeRegister
		m.setFocus(fieldName)
		return
	}
	m.mode = modeLogin
	m.setFocus(fieldEmail)
}

func (m *AuthModel) moveFocus(delta int) {
	first := fieldEmail
	if m.mode == modeRegister {
		first = fieldName
	}
	count := len(m.inputs) - first
	next := first + ((m.focus-first+delta)%count+count)%count
	m.setFocus(next)
}

func (m *AuthModel) setFocus(idx int) {
	m.inputs[m.focus].Blur()
	m.focus = idx
	m.inputs[m.focus].Focus()
}
