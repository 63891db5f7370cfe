// Package display provides the terminal UI using Bubble Tea.
//
// [App] is the root model: it routes between the recipe list and the
// editor, applies network completions on the update loop and renders a
// blocking alert when the list cannot be fetched. [UI] runs an App and
// doubles as the notifier the App's controllers report through.
package display

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/recipedesk/internal/domain"
)

// ── Styles ───────────────────────────────────────────────────────

var (
	// BannerStyle is the muted slate used for the startup banner.
	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#86efac"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	focusedPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#fde68a"))

	alertStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#fca5a5")).
			Foreground(lipgloss.Color("#fca5a5")).
			Padding(1, 3)

	flashStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd"))
)

// ── UI ───────────────────────────────────────────────────────────

// Compile-time interface check.
var _ domain.Notifier = (*UI)(nil)

// UI runs the Bubble Tea program and delivers notifications into it.
//
// Call [NewUI], build the [App] with the UI as its notifier, then call
// [UI.Run] (blocking). Notifications may be sent from any goroutine.
type UI struct {
	program *tea.Program
	done    atomic.Bool
	opts    []tea.ProgramOption
}

// NewUI creates the display. Call Run() to start.
func NewUI(opts ...tea.ProgramOption) *UI {
	return &UI{opts: opts}
}

// Notify shows a transient message in the footer.
func (u *UI) Notify(ctx context.Context, message string) error {
	if !u.running() {
		fmt.Println(message)
		return nil
	}
	u.program.Send(flashMsg(message))
	return nil
}

// NotifyUrgent shows a modal alert and blocks until the user dismisses it
// or ctx ends. Outside a running program it prints to stderr instead.
func (u *UI) NotifyUrgent(ctx context.Context, message string) error {
	if !u.running() {
		_, err := fmt.Fprintln(os.Stderr, "error: "+message)
		return err
	}
	ack := make(chan struct{})
	u.program.Send(alertMsg{text: message, ack: ack})
	select {
	case <-ack:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (u *UI) running() bool { return u.program != nil && !u.done.Load() }

// Run starts the Bubble Tea event loop with app as the root model.
// Blocks until quit.
func (u *UI) Run(app *App) error {
	u.program = tea.NewProgram(app, u.opts...)
	_, err := u.program.Run()
	u.done.Store(true)
	return err
}

// Quit tells Bubble Tea to exit.
func (u *UI) Quit() {
	if u.program != nil {
		u.program.Quit()
	}
}
