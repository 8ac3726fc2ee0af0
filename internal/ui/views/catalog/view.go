package catalog

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	catalogdto "questlog/internal/modules/catalog/dto"
	"questlog/internal/ui/theme"
)

type CatalogPort interface {
	List(ctx context.Context, collection string) ([]catalogdto.DefinitionOutput, error)
}

type DefinitionsLoadedMsg struct {
	Collection  string
	Definitions []catalogdto.DefinitionOutput
	Err         error
}

type defItem struct {
	def catalogdto.DefinitionOutput
}

func (i defItem) Title() string { return i.def.Name }
func (i defItem) Description() string {
	return fmt.Sprintf("%d min · %.2f XP · ×%.2f", i.def.BaseMinutes, i.def.BaseXP, i.def.Multiplier)
}
func (i defItem) FilterValue() string { return i.def.Name }

// Model renders one definition collection as a filterable list. The
// same view serves both the Tasks and the Rewards tab.
type Model struct {
	port       CatalogPort
	collection string
	list       list.Model
	spinner    spinner.Model
	loading    bool
	width      int
	height     int
}

func New(port CatalogPort, collection, title string) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = title
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:       port,
		collection: collection,
		list:       l,
		spinner:    sp,
		loading:    true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

// Reload refetches the collection; the app triggers this after every
// palette mutation so the list never shows stale definitions.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		defs, err := m.port.List(context.Background(), m.collection)
		return DefinitionsLoadedMsg{Collection: m.collection, Definitions: defs, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width-2, m.height-2)
		return m, nil

	case DefinitionsLoadedMsg:
		if msg.Collection != m.collection {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			m.list.Title = m.list.Title + " — " + msg.Err.Error()
			return m, nil
		}
		items := make([]list.Item, len(msg.Definitions))
		for i, d := range msg.Definitions {
			items[i] = defItem{def: d}
		}
		return m, m.list.SetItems(items)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.loading {
		return theme.Pane.Render(m.spinner.View() + " loading…")
	}
	return m.list.View()
}

// Filtering reports whether the list filter input is open.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Selected returns the highlighted definition, if any.
func (m Model) Selected() (catalogdto.DefinitionOutput, bool) {
	item, ok := m.list.SelectedItem().(defItem)
	if !ok {
		return catalogdto.DefinitionOutput{}, false
	}
	return item.def, true
}
