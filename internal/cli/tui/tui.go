// Package tui implements the interactive terminal browser shown by
// `repograph browse` and `repograph preview --interactive`: a live
// tree/priority browser over the files a run selected. The first screen
// reuses the plain-text token report used elsewhere in the CLI so the
// session opens on a familiar summary before dropping into the scrollable
// list, detail-pane view.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/repograph/repograph/internal/pipeline"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	detailStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	reportStyle = lipgloss.NewStyle().Padding(1, 2)
)

// fileItem adapts a *pipeline.FileDescriptor to the bubbles/list.Item
// interface so selected files can be rendered in the browser's list pane.
type fileItem struct {
	fd *pipeline.FileDescriptor
}

func (i fileItem) Title() string {
	return fmt.Sprintf("%-60s %6d tok", i.fd.Path, i.fd.TokenCount)
}

func (i fileItem) Description() string {
	return fmt.Sprintf("tier %d · priority %.2f", i.fd.Tier, i.fd.Priority)
}

func (i fileItem) FilterValue() string {
	return i.fd.Path
}

// screen identifies which of the browser's two views is active.
type screen int

const (
	screenReport screen = iota
	screenBrowse
)

type model struct {
	screen screen
	report string
	list   list.Model
	files  []*pipeline.FileDescriptor
	width  int
	height int
}

// Run launches the interactive terminal UI. report is shown as the initial
// screen (typically the same token report the non-interactive preview
// prints); pressing any key advances to the scrollable file browser. Use
// arrow keys or j/k to move, / to filter, q or ctrl+c to quit.
func Run(files []*pipeline.FileDescriptor, report string) error {
	items := make([]list.Item, len(files))
	for i, fd := range files {
		items[i] = fileItem{fd: fd}
	}

	delegate := list.NewDefaultDelegate()
	l := list.New(items, delegate, 80, 20)
	l.Title = "repograph browse"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	m := model{
		screen: screenReport,
		report: report,
		list:   l,
		files:  files,
		width:  80,
		height: 24,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	if err != nil {
		return fmt.Errorf("file browser: %w", err)
	}
	return nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.screen == screenReport {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			default:
				m.screen = screenBrowse
				return m, nil
			}
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-8)
	}

	if m.screen == screenBrowse {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) View() string {
	if m.screen == screenReport {
		return reportStyle.Render(m.report + "\n" + footerStyle.Render("press any key to browse selected files · q to quit"))
	}

	header := titleStyle.Render(fmt.Sprintf("Selected files (%d)", len(m.files)))

	detail := "select a file to see details"
	if item, ok := m.list.SelectedItem().(fileItem); ok {
		fd := item.fd
		detail = fmt.Sprintf("%s\ntokens: %d  tier: %d  priority: %.2f  imports: %d",
			fd.Path, fd.TokenCount, fd.Tier, fd.Priority, len(fd.Imports))
	}

	footer := footerStyle.Render("↑/↓ navigate · / filter · q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.list.View(),
		detailStyle.Width(m.width-4).Render(detail),
		footer,
	)
}
