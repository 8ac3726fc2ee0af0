package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	catalogdto "questlog/internal/modules/catalog/dto"
	ledgerdto "questlog/internal/modules/ledger/dto"
	sessiondto "questlog/internal/modules/session/dto"
	apperrors "questlog/internal/platform/errors"
	"questlog/internal/ui/components"
	"questlog/internal/ui/theme"
	calendarview "questlog/internal/ui/views/calendar"
	catalogview "questlog/internal/ui/views/catalog"
	sessionview "questlog/internal/ui/views/session"
	statsview "questlog/internal/ui/views/stats"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type catalogPort interface {
	Define(ctx context.Context, collection, name string, baseMinutes int, baseXP, multiplier float64) (catalogdto.DefinitionOutput, error)
	Remove(ctx context.Context, collection, name string) error
	List(ctx context.Context, collection string) ([]catalogdto.DefinitionOutput, error)
}

type ledgerPort interface {
	Balance(ctx context.Context) (float64, error)
	TotalsByName(ctx context.Context, kind string) ([]ledgerdto.NameTotalOutput, error)
	TotalsByDate(ctx context.Context) ([]ledgerdto.DayTotalsOutput, error)
	Recent(ctx context.Context, n int) ([]ledgerdto.EntryOutput, error)
	UndoLast(ctx context.Context) (ledgerdto.EntryOutput, error)
}

type sessionPort interface {
	Start(ctx context.Context, kind, name string, targetMinutes int) (sessiondto.StartOutput, error)
	Tick(ctx context.Context) (sessiondto.TickOutput, error)
	GetActive(ctx context.Context) (sessiondto.ActiveOutput, error)
	Reset(ctx context.Context) error
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabSession tabID = iota
	tabTasks
	tabRewards
	tabStats
	tabCalendar
	tabCount
)

var tabLabels = [tabCount]string{
	"Session", "Tasks", "Rewards", "Stats", "Calendar",
}

// ─── async messages ───────────────────────────────────────────────────────────

type activeLoadedMsg struct {
	active sessiondto.ActiveOutput
	err    error
}

type sessionStartedMsg struct {
	out sessiondto.StartOutput
	err error
}

type sessionAbandonedMsg struct{ err error }

type timerMsg struct{}

type tickedMsg struct {
	out sessiondto.TickOutput
	err error
}

type catalogMutatedMsg struct {
	collection string
	verb       string
	name       string
	err        error
}

type undoneMsg struct {
	entry ledgerdto.EntryOutput
	err   error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Start   key.Binding
	Abandon key.Binding
	Undo    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Start:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start timer")),
		Abandon: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "abandon session")),
		Undo:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo last entry")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Start, k.Abandon},
		{k.Undo},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the one-second
// countdown loop, the global help overlay, and the command palette. All
// business logic is delegated to port interfaces; all rendering is
// delegated to sub-views.
type Model struct {
	catalog catalogPort
	ledger  ledgerPort
	session sessionPort

	sessView sessionview.Model
	taskView catalogview.Model
	rwrdView catalogview.Model
	statView statsview.Model
	calView  calendarview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	hasActive bool
	status    string
	width     int
	height    int
}

func NewModel(catalog catalogPort, ledger ledgerPort, session sessionPort) Model {
	return Model{
		catalog:   catalog,
		ledger:    ledger,
		session:   session,
		sessView:  sessionview.New(),
		taskView:  catalogview.New(catalog, "tasks", "Tasks"),
		rwrdView:  catalogview.New(catalog, "rewards", "Rewards"),
		statView:  statsview.New(ledger),
		calView:   calendarview.New(ledger),
		activeTab: tabSession,
		keys:      defaultKeys(),
		help:      help.New(),
		palette:   components.NewPalette(),
		status:    "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.taskView.Init(),
		m.rwrdView.Init(),
		m.statView.Init(),
		m.calView.Init(),
		m.loadActiveCmd(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		if _, isKey := msg.(tea.KeyMsg); isKey {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()

	case activeLoadedMsg:
		if msg.err != nil {
			if !errors.Is(msg.err, apperrors.ErrNoActiveSession) {
				m.status = "active session check: " + msg.err.Error()
			}
			m.hasActive = false
		} else {
			m.hasActive = true
			m.status = "session recovered: " + msg.active.Name
			cmds = append(cmds, m.tickNowCmd(), timerCmd())
		}

	case sessionStartedMsg:
		if msg.err != nil {
			m.status = "start failed: " + msg.err.Error()
		} else {
			m.hasActive = true
			m.activeTab = tabSession
			verb := "earning"
			if msg.out.Kind == "spend" {
				verb = "spending"
			}
			m.status = fmt.Sprintf("%s %.2f XP over %d min", verb, msg.out.Amount, msg.out.TargetMinutes)
			if msg.out.Charged {
				cmds = append(cmds, m.statView.Reload(), m.calView.Reload())
			}
			cmds = append(cmds, m.tickNowCmd(), timerCmd())
		}

	case sessionAbandonedMsg:
		if msg.err != nil {
			m.status = "abandon failed: " + msg.err.Error()
		} else {
			m.hasActive = false
			m.status = "session abandoned"
			m.sessView, _ = m.sessView.Update(sessionview.IdleMsg{})
		}

	case timerMsg:
		if m.hasActive {
			cmds = append(cmds, m.tickNowCmd(), timerCmd())
		}

	case tickedMsg:
		if msg.err != nil {
			if errors.Is(msg.err, apperrors.ErrNoActiveSession) {
				m.hasActive = false
				m.sessView, _ = m.sessView.Update(sessionview.IdleMsg{})
			} else {
				m.status = "tick: " + msg.err.Error()
			}
			break
		}
		if msg.out.Completed {
			m.hasActive = false
			m.sessView, _ = m.sessView.Update(sessionview.IdleMsg{})
			if msg.out.Kind == "earn" {
				m.status = fmt.Sprintf("completed %s: +%.2f XP", msg.out.Name, msg.out.Amount)
			} else {
				m.status = fmt.Sprintf("enjoyed %s (%.2f XP spent)", msg.out.Name, msg.out.Amount)
			}
			cmds = append(cmds, m.statView.Reload(), m.calView.Reload())
		} else {
			m.sessView, _ = m.sessView.Update(sessionview.StateMsg{Out: msg.out})
		}

	case catalogMutatedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("%s %s: %s", msg.verb, msg.name, msg.err.Error())
			break
		}
		m.status = fmt.Sprintf("%s %s", msg.verb, msg.name)
		if msg.collection == "tasks" {
			cmds = append(cmds, m.taskView.Reload())
		} else {
			cmds = append(cmds, m.rwrdView.Reload())
		}

	case undoneMsg:
		if msg.err != nil {
			if errors.Is(msg.err, apperrors.ErrEmptyLedger) {
				m.status = "nothing to undo"
			} else {
				m.status = "undo: " + msg.err.Error()
			}
			break
		}
		m.status = fmt.Sprintf("removed %s entry for %s (%.2f XP)", msg.entry.Kind, msg.entry.Name, msg.entry.Amount)
		cmds = append(cmds, m.statView.Reload(), m.calView.Reload())

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to sub-view when its search filter is active.
		if m.subViewFiltering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		case "?":
			m.showHelp = !m.showHelp
		case ":":
			cmds = append(cmds, m.palette.Open())
			return m, tea.Batch(cmds...)
		case "s":
			if def, kind, ok := m.selectedDefinition(); ok {
				cmds = append(cmds, m.startSessionCmd(kind, def.Name, def.BaseMinutes))
			}
		case "a":
			if m.hasActive {
				cmds = append(cmds, m.abandonSessionCmd())
			}
		case "u":
			if m.activeTab == tabStats {
				cmds = append(cmds, m.undoCmd())
			}
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabSession:
		m.sessView, tabCmd = m.sessView.Update(msg)
	case tabTasks:
		m.taskView, tabCmd = m.taskView.Update(msg)
	case tabRewards:
		m.rwrdView, tabCmd = m.rwrdView.Update(msg)
	case tabStats:
		m.statView, tabCmd = m.statView.Update(msg)
	case tabCalendar:
		m.calView, tabCmd = m.calView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabSession:
		return m.sessView.View()
	case tabTasks:
		return m.taskView.View()
	case tabRewards:
		return m.rwrdView.View()
	case tabStats:
		return m.statView.View()
	case tabCalendar:
		return m.calView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "questlog  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.hasActive {
		left = theme.Hot.Render("● timer running") + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "task:add", "reward:add":
		collection := "tasks"
		if parts[0] == "reward:add" {
			collection = "rewards"
		}
		if len(parts) < 5 {
			m.status = "usage: " + parts[0] + " <name> <minutes> <xp> <multiplier>"
			return m, nil
		}
		name := strings.Join(parts[1:len(parts)-3], " ")
		minutes, err1 := strconv.Atoi(parts[len(parts)-3])
		xp, err2 := strconv.ParseFloat(parts[len(parts)-2], 64)
		multiplier, err3 := strconv.ParseFloat(parts[len(parts)-1], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			m.status = "invalid numbers: expected <minutes> <xp> <multiplier>"
			return m, nil
		}
		return m, m.defineCmd(collection, name, minutes, xp, multiplier)

	case "task:rm", "reward:rm":
		collection := "tasks"
		if parts[0] == "reward:rm" {
			collection = "rewards"
		}
		if len(parts) < 2 {
			m.status = "usage: " + parts[0] + " <name>"
			return m, nil
		}
		return m, m.removeCmd(collection, strings.Join(parts[1:], " "))

	case "session:start":
		if len(parts) < 4 {
			m.status = "usage: session:start <earn|spend> <name> <minutes>"
			return m, nil
		}
		minutes, err := strconv.Atoi(parts[len(parts)-1])
		if err != nil {
			m.status = "invalid minutes"
			return m, nil
		}
		name := strings.Join(parts[2:len(parts)-1], " ")
		return m, m.startSessionCmd(parts[1], name, minutes)

	case "session:abandon":
		if !m.hasActive {
			m.status = "no session running"
			return m, nil
		}
		return m, m.abandonSessionCmd()

	case "log:undo":
		return m, m.undoCmd()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// selectedDefinition maps the current tab to a startable definition.
// Tasks start earn sessions, rewards start spend sessions.
func (m Model) selectedDefinition() (catalogdto.DefinitionOutput, string, bool) {
	switch m.activeTab {
	case tabTasks:
		def, ok := m.taskView.Selected()
		return def, "earn", ok
	case tabRewards:
		def, ok := m.rwrdView.Selected()
		return def, "spend", ok
	}
	return catalogdto.DefinitionOutput{}, "", false
}

// subViewFiltering reports whether the active tab's list filter is open,
// in which case global key bindings must yield to allow free typing.
func (m Model) subViewFiltering() bool {
	switch m.activeTab {
	case tabTasks:
		return m.taskView.Filtering()
	case tabRewards:
		return m.rwrdView.Filtering()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.sessView, _ = m.sessView.Update(sz)
	m.taskView, _ = m.taskView.Update(sz)
	m.rwrdView, _ = m.rwrdView.Update(sz)
	m.statView, _ = m.statView.Update(sz)
	m.calView, _ = m.calView.Update(sz)
}

// ─── async commands ───────────────────────────────────────────────────────────

func timerCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return timerMsg{}
	})
}

func (m Model) loadActiveCmd() tea.Cmd {
	return func() tea.Msg {
		active, err := m.session.GetActive(context.Background())
		return activeLoadedMsg{active: active, err: err}
	}
}

func (m Model) tickNowCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.Tick(context.Background())
		return tickedMsg{out: out, err: err}
	}
}

func (m Model) startSessionCmd(kind, name string, minutes int) tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.Start(context.Background(), kind, name, minutes)
		return sessionStartedMsg{out: out, err: err}
	}
}

func (m Model) abandonSessionCmd() tea.Cmd {
	return func() tea.Msg {
		return sessionAbandonedMsg{err: m.session.Reset(context.Background())}
	}
}

func (m Model) defineCmd(collection, name string, minutes int, xp, multiplier float64) tea.Cmd {
	return func() tea.Msg {
		_, err := m.catalog.Define(context.Background(), collection, name, minutes, xp, multiplier)
		return catalogMutatedMsg{collection: collection, verb: "defined", name: name, err: err}
	}
}

func (m Model) removeCmd(collection, name string) tea.Cmd {
	return func() tea.Msg {
		err := m.catalog.Remove(context.Background(), collection, name)
		return catalogMutatedMsg{collection: collection, verb: "removed", name: name, err: err}
	}
}

func (m Model) undoCmd() tea.Cmd {
	return func() tea.Msg {
		entry, err := m.ledger.UndoLast(context.Background())
		return undoneMsg{entry: entry, err: err}
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
