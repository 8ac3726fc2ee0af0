package stats

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	ledgerdto "questlog/internal/modules/ledger/dto"
	"questlog/internal/ui/theme"
)

const recentLimit = 15

type LedgerPort interface {
	Balance(ctx context.Context) (float64, error)
	TotalsByName(ctx context.Context, kind string) ([]ledgerdto.NameTotalOutput, error)
	Recent(ctx context.Context, n int) ([]ledgerdto.EntryOutput, error)
}

type LoadedMsg struct {
	Balance float64
	Earned  []ledgerdto.NameTotalOutput
	Spent   []ledgerdto.NameTotalOutput
	Recent  []ledgerdto.EntryOutput
	Err     error
}

// Model is the read-only statistics tab: current balance, per-name
// totals, and the most recent ledger entries.
type Model struct {
	port     LedgerPort
	viewport viewport.Model
	loaded   LoadedMsg
	ready    bool
	width    int
	height   int
}

func New(port LedgerPort) Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Padding(0, 1)
	return Model{port: port, viewport: vp}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

// Reload refetches everything the tab shows. The app triggers it after
// any ledger mutation.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		balance, err := m.port.Balance(ctx)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		earned, err := m.port.TotalsByName(ctx, "earn")
		if err != nil {
			return LoadedMsg{Err: err}
		}
		spent, err := m.port.TotalsByName(ctx, "spend")
		if err != nil {
			return LoadedMsg{Err: err}
		}
		recent, err := m.port.Recent(ctx, recentLimit)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		return LoadedMsg{Balance: balance, Earned: earned, Spent: spent, Recent: recent}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.width
		m.viewport.Height = m.height
		m.viewport.SetContent(m.render())
		return m, nil

	case LoadedMsg:
		m.loaded = msg
		m.ready = true
		m.viewport.SetContent(m.render())
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m Model) render() string {
	if !m.ready {
		return theme.Muted.Render("loading…")
	}
	if m.loaded.Err != nil {
		return theme.Spend.Render("stats: " + m.loaded.Err.Error())
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Balance") + "\n")
	sb.WriteString(theme.Hot.Render(fmt.Sprintf("%.2f XP", m.loaded.Balance)) + "\n\n")

	sb.WriteString(theme.Title.Render("Earned by task") + "\n")
	sb.WriteString(renderTotals(m.loaded.Earned, theme.Earn, m.width))
	sb.WriteString("\n")

	sb.WriteString(theme.Title.Render("Spent by reward") + "\n")
	sb.WriteString(renderTotals(m.loaded.Spent, theme.Spend, m.width))
	sb.WriteString("\n")

	sb.WriteString(theme.Title.Render("Recent activity") + "\n")
	if len(m.loaded.Recent) == 0 {
		sb.WriteString(theme.Muted.Render("no entries yet") + "\n")
	}
	for _, e := range m.loaded.Recent {
		sign := "+"
		style := theme.Earn
		if e.Kind == "spend" {
			sign = "-"
			style = theme.Spend
		}
		sb.WriteString(fmt.Sprintf("%s  %-20s %s  %s\n",
			theme.Muted.Render(e.At.Format("Jan 02 15:04")),
			e.Name,
			style.Render(fmt.Sprintf("%s%.2f XP", sign, e.Amount)),
			theme.Muted.Render(fmt.Sprintf("%d min", e.Minutes)),
		))
	}
	return sb.String()
}

func renderTotals(totals []ledgerdto.NameTotalOutput, style lipgloss.Style, width int) string {
	if len(totals) == 0 {
		return theme.Muted.Render("nothing here yet") + "\n"
	}
	maxXP := totals[0].XP
	for _, t := range totals {
		if t.XP > maxXP {
			maxXP = t.XP
		}
	}
	barSpace := width - 36
	if barSpace < 10 {
		barSpace = 10
	}
	var sb strings.Builder
	for _, t := range totals {
		barLen := 0
		if maxXP > 0 {
			barLen = int(t.XP / maxXP * float64(barSpace))
		}
		sb.WriteString(fmt.Sprintf("%-20s %s %s\n",
			t.Name,
			style.Render(strings.Repeat("█", barLen)),
			theme.Muted.Render(fmt.Sprintf("%.2f", t.XP)),
		))
	}
	return sb.String()
}
