// SPDX-License-Identifier: MPL-2.0

// Package tui provides the interactive prompts: a fuzzy-filterable list
// picker and a confirmation prompt.
package tui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

type (
	// SelectItem is one pickable entry. Display is what the user sees,
	// Search is the text fuzzy matching runs against, and Data is the
	// opaque payload handed back on selection.
	SelectItem struct {
		Display string
		Search  string
		Data    string
	}

	// SelectOptions configures the Select prompt.
	SelectOptions struct {
		// Title is the prompt displayed above the list.
		Title string
		// Items is the ordered list of entries to pick from.
		Items []SelectItem
		// Height limits the visible height (0 for a default).
		Height int
		// Width limits the visible width (0 for a default).
		Width int
	}

	// selectModel is the bubbletea model for the Select prompt.
	selectModel struct {
		list      list.Model
		items     []SelectItem
		quitting  bool
		cancelled bool
	}
)

// FilterValue exposes both display and search text to the list filter, so
// typed queries match either and highlight indexes stay aligned with the
// rendered title.
func (i SelectItem) FilterValue() string { return i.Display + " " + i.Search }

// Title implements list.DefaultItem.
func (i SelectItem) Title() string { return i.Display }

// Description implements list.DefaultItem.
func (i SelectItem) Description() string { return "" }

// fuzzyRank ranks filter candidates with fuzzy matching; results come back
// best score first.
func fuzzyRank(term string, targets []string) []list.Rank {
	matches := fuzzy.Find(term, targets)
	ranks := make([]list.Rank, len(matches))
	for i, m := range matches {
		ranks[i] = list.Rank{Index: m.Index, MatchedIndexes: m.MatchedIndexes}
	}
	return ranks
}

func newSelectModel(opts SelectOptions) selectModel {
	items := make([]list.Item, len(opts.Items))
	for i, item := range opts.Items {
		items[i] = item
	}

	height := opts.Height
	if height == 0 {
		height = 14
	}
	width := opts.Width
	if width == 0 {
		width = 60
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false

	l := list.New(items, delegate, width, height)
	l.Title = opts.Title
	l.Filter = fuzzyRank
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))

	return selectModel{
		list:  l,
		items: opts.Items,
	}
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// While the filter input is focused, keys belong to it.
		if m.list.FilterState() != list.Filtering {
			switch msg.String() {
			case "ctrl+c", "esc", "q":
				m.quitting = true
				m.cancelled = true
				return m, tea.Quit
			case "enter":
				m.quitting = true
				return m, tea.Quit
			}
		} else if msg.String() == "ctrl+c" {
			m.quitting = true
			m.cancelled = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height - 2)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m selectModel) View() string {
	if m.quitting {
		return ""
	}
	return m.list.View()
}

// selected returns the payload of the highlighted item, if any.
func (m selectModel) selected() (string, bool) {
	if m.cancelled {
		return "", false
	}
	if item, ok := m.list.SelectedItem().(SelectItem); ok {
		return item.Data, true
	}
	return "", false
}

// Select prompts the user to pick one item. It returns the chosen item's
// Data and true, or false when the user aborted the prompt (Esc or Ctrl-C).
// Aborting is not an error.
func Select(opts SelectOptions) (string, bool, error) {
	if len(opts.Items) == 0 {
		return "", false, nil
	}

	p := tea.NewProgram(newSelectModel(opts))
	finalModel, err := p.Run()
	if err != nil {
		return "", false, err
	}

	data, ok := finalModel.(selectModel).selected()
	return data, ok, nil
}
