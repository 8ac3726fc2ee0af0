package session

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "questlog/internal/modules/session/dto"
	"questlog/internal/ui/theme"
)

// StateMsg carries the latest countdown observation into the view.
type StateMsg struct{ Out sessiondto.TickOutput }

// IdleMsg clears the view back to its no-session state.
type IdleMsg struct{}

// Model renders the single active countdown. It owns no ports; the app
// drives it with StateMsg/IdleMsg so that the completion transition
// happens in exactly one place.
type Model struct {
	active bool
	out    sessiondto.TickOutput
	bar    progress.Model
	width  int
	height int
}

func New() Model {
	bar := progress.New(progress.WithGradient(string(theme.Sapphire), string(theme.Green)))
	return Model{bar: bar}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		barWidth := m.width - 12
		if barWidth < 10 {
			barWidth = 10
		}
		if barWidth > 70 {
			barWidth = 70
		}
		m.bar.Width = barWidth

	case StateMsg:
		m.active = true
		m.out = msg.Out

	case IdleMsg:
		m.active = false
		m.out = sessiondto.TickOutput{}
	}
	return m, nil
}

func (m Model) View() string {
	var body string
	if !m.active {
		body = lipgloss.JoinVertical(lipgloss.Left,
			theme.Title.Render("No session running"),
			"",
			theme.Muted.Render("Pick a task or reward and press s to start a timer,"),
			theme.Muted.Render("or use :session:start <earn|spend> <name> <minutes>."),
		)
	} else {
		kindStyle := theme.Earn
		verb := "earning"
		if m.out.Kind == "spend" {
			kindStyle = theme.Spend
			verb = "spending"
		}
		minutes := m.out.RemainingSeconds / 60
		seconds := m.out.RemainingSeconds % 60
		body = lipgloss.JoinVertical(lipgloss.Left,
			theme.Title.Render(m.out.Name)+"  "+kindStyle.Render(verb+fmt.Sprintf(" %.2f XP", m.out.Amount)),
			"",
			theme.Hot.Render(fmt.Sprintf("%02d:%02d", minutes, seconds))+theme.Muted.Render(fmt.Sprintf("  of %d min", m.out.TargetMinutes)),
			"",
			m.bar.ViewAs(m.out.Fraction),
		)
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, theme.Pane.Render(body))
}
