// Package tui is the terminal view of the fetched list. It renders whatever
// the state holder publishes and asks it to re-fetch on demand.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/fetchlist/internal/model"
	"github.com/idilsaglam/fetchlist/internal/state"
	"github.com/idilsaglam/fetchlist/internal/ui"
)

// Refresher starts a fetch cycle without blocking.
type Refresher interface {
	TriggerFetch()
}

// stateMsg carries a holder snapshot into the Bubble Tea loop.
type stateMsg state.State

// listItem adapts model.ListableItem to bubbles/list.Item
type listItem struct {
	item model.ListableItem
}

func (i listItem) Title() string       { return i.item.DisplayName() }
func (i listItem) Description() string { return fmt.Sprintf("id %d, list %d", i.item.ID, i.item.ListID) }
func (i listItem) FilterValue() string { return i.item.DisplayName() }

// Single-line rows: group glyph, then the name.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, it list.Item) {
	li, ok := it.(listItem)
	if !ok {
		return
	}
	glyph := groupStyle(li.item.ListID).Render(ui.Current().GroupGlyph(li.item.ListID))
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s\n", prefix, glyph, li.item.DisplayName())
}

type keyMap struct {
	Refresh key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "re-fetch")),
	Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// Model is the Bubble Tea model for the list screen.
type Model struct {
	list    list.Model
	spinner spinner.Model
	ref     Refresher
	st      state.State
	width   int
	height  int
}

func New(ref Refresher) Model {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.Title = "Fetched list"
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")
	l.KeyMap.Quit.SetEnabled(false)
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{keys.Refresh, keys.Quit} }
	l.AdditionalFullHelpKeys = func() []key.Binding { return []key.Binding{keys.Refresh, keys.Quit} }

	s := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle))

	return Model{
		list:    l,
		spinner: s,
		ref:     ref,
		st:      state.State{Items: []model.ListableItem{}},
		width:   80,
		height:  24,
	}
}

// Init kicks off the first fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.refresh)
}

func (m Model) refresh() tea.Msg {
	m.ref.TriggerFetch()
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(max(msg.Width-4, 10), max(msg.Height-4, 3))
		return m, nil

	case stateMsg:
		itemsChanged := !sameItems(m.st.Items, msg.Items)
		m.st = state.State(msg)
		m.list.Title = header(m.st.Items)
		if itemsChanged {
			return m, m.list.SetItems(toListItems(m.st.Items))
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Refresh):
			// Like a disabled menu action: ignored while a cycle runs.
			if m.st.Busy {
				return m, nil
			}
			return m, m.refresh
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder
	switch {
	case m.st.HasErr:
		msg := errorStyle.Render(m.st.Err) + "\n\n" + mutedStyle.Render("press r to re-fetch, q to quit")
		b.WriteString(errorCardStyle.Render(msg))
	default:
		b.WriteString(m.list.View())
	}
	if m.st.Busy {
		b.WriteString("\n")
		b.WriteString(cardStyle.Render(m.spinner.View() + " Fetching list..."))
	}
	return panelStyle.Render(b.String())
}

func toListItems(items []model.ListableItem) []list.Item {
	out := make([]list.Item, 0, len(items))
	for _, it := range items {
		out = append(out, listItem{item: it})
	}
	return out
}

func sameItems(a, b []model.ListableItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].ListID != b[i].ListID || a[i].DisplayName() != b[i].DisplayName() {
			return false
		}
	}
	return true
}

// header shows the total and a per-group count.
func header(items []model.ListableItem) string {
	counts := map[int]int{}
	var order []int
	for _, it := range items {
		if counts[it.ListID] == 0 {
			order = append(order, it.ListID)
		}
		counts[it.ListID]++
	}
	parts := []string{titleStyle.Render("Fetched list")}
	for _, id := range order {
		parts = append(parts, fmt.Sprintf("%s %d", ui.Current().GroupGlyph(id), counts[id]))
	}
	parts = append(parts, accentStyle.Render("Total")+fmt.Sprintf(" %d", len(items)))
	return strings.Join(parts, "  ")
}

// Run starts the program with h wired in both directions and closes h on exit.
func Run(h *state.Holder, opts ...tea.ProgramOption) error {
	defer h.Close()

	p := tea.NewProgram(New(h), append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...)
	unsubscribe := h.Subscribe(func(s state.State) { p.Send(stateMsg(s)) })
	defer unsubscribe()

	_, err := p.Run()
	return err
}
