package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	ledgerdto "questlog/internal/modules/ledger/dto"
	"questlog/internal/ui/theme"
)

type LedgerPort interface {
	TotalsByDate(ctx context.Context) ([]ledgerdto.DayTotalsOutput, error)
}

type TotalsLoadedMsg struct {
	Totals []ledgerdto.DayTotalsOutput
	Err    error
}

// Model renders a month grid with earned/spent totals per local day.
// Left/right move between months; the current day is highlighted.
type Model struct {
	port   LedgerPort
	totals map[string]ledgerdto.DayTotalsOutput
	month  time.Time
	err    error
	width  int
	height int
}

func New(port LedgerPort) Model {
	now := time.Now()
	return Model{
		port:   port,
		totals: map[string]ledgerdto.DayTotalsOutput{},
		month:  time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local),
	}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		totals, err := m.port.TotalsByDate(context.Background())
		return TotalsLoadedMsg{Totals: totals, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case TotalsLoadedMsg:
		m.err = msg.Err
		m.totals = map[string]ledgerdto.DayTotalsOutput{}
		for _, t := range msg.Totals {
			m.totals[t.Date.Format("2006-01-02")] = t
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			m.month = m.month.AddDate(0, -1, 0)
		case "right", "l":
			m.month = m.month.AddDate(0, 1, 0)
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.err != nil {
		return theme.Spend.Render("calendar: " + m.err.Error())
	}

	header := theme.Title.Render(m.month.Format("January 2006")) +
		theme.Muted.Render("   ←/→ month")
	weekdays := theme.Muted.Render(" Mon    Tue    Wed    Thu    Fri    Sat    Sun")

	today := time.Now().Format("2006-01-02")
	first := m.month
	daysInMonth := first.AddDate(0, 1, -1).Day()

	// Monday-based column of the first day.
	col := (int(first.Weekday()) + 6) % 7

	var rows []string
	cells := make([]string, 0, 7)
	for i := 0; i < col; i++ {
		cells = append(cells, strings.Repeat(" ", 6))
	}
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.Local)
		key := date.Format("2006-01-02")
		label := fmt.Sprintf("%3d", day)
		if key == today {
			label = theme.Hot.Render(label)
		}
		mark := "   "
		if t, ok := m.totals[key]; ok {
			switch {
			case t.Earned > 0 && t.Spent > 0:
				mark = theme.Earn.Render("+") + theme.Spend.Render("-") + " "
			case t.Earned > 0:
				mark = theme.Earn.Render("+") + "  "
			case t.Spent > 0:
				mark = theme.Spend.Render("-") + "  "
			}
		}
		cells = append(cells, label+" "+mark)
		if len(cells) == 7 {
			rows = append(rows, strings.Join(cells, " "))
			cells = cells[:0]
		}
	}
	if len(cells) > 0 {
		rows = append(rows, strings.Join(cells, " "))
	}

	var totalsLine string
	monthKey := m.month.Format("2006-01")
	var earned, spent float64
	for key, t := range m.totals {
		if strings.HasPrefix(key, monthKey) {
			earned += t.Earned
			spent += t.Spent
		}
	}
	totalsLine = theme.Earn.Render(fmt.Sprintf("earned %.2f", earned)) + "  " +
		theme.Spend.Render(fmt.Sprintf("spent %.2f", spent))

	body := lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		weekdays,
		strings.Join(rows, "\n"),
		"",
		totalsLine,
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, theme.Pane.Render(body))
}
