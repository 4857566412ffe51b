package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/ai-interviewer/internal/mock"
	"github.com/MKhiriev/ai-interviewer/internal/navigation"
)

// cmdTimeout отсекает команды-таймеры (мигание курсора, tea.Tick)
const cmdTimeout = 100 * time.Millisecond

// runCmd выполняет команду и разворачивает tea.Batch, возвращая все
// сообщения, которые успели прийти за cmdTimeout.
func runCmd(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(cmdTimeout):
		return nil
	}

	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(t, c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// findMsg возвращает первое сообщение типа T из msgs.
func findMsg[T any](t *testing.T, msgs []tea.Msg) T {
	t.Helper()
	for _, msg := range msgs {
		if v, ok := msg.(T); ok {
			return v
		}
	}
	var zero T
	require.Failf(t, "message not found", "no %T among %d messages", zero, len(msgs))
	return zero
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

// expectNavigate ожидает ровно один переход на route.
func expectNavigate(nav *mock.MockNavigator, route navigation.Route) {
	nav.EXPECT().Navigate(route).Times(1)
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

// ── navigate ─────────────────────────────────────────────────────────────────

func TestNavigate_CallsNavigatorOnlyWhenRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	nav := mock.NewMockNavigator(ctrl)

	cmd := navigate(nav, navigation.Results(3))
	require.NotNil(t, cmd)

	// пока команда не выполнена, навигатор не вызывается
	expectNavigate(nav, navigation.Results(3))
	assert.Nil(t, cmd())
}
