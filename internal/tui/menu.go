package tui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Action identifies a main-menu entry.
type Action int

const (
	ActionNone Action = iota
	ActionChat
	ActionAdd
	ActionLoad
	ActionSave
	ActionImport
	ActionViewKnowledge
	ActionViewLogs
	ActionSaveLogs
	ActionQuit
)

type item struct {
	title, desc string
	action      Action
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title }

type MenuModel struct {
	list list.Model
}

func NewMenuModel() MenuModel {
	items := []list.Item{
		item{title: "Chat", desc: "Talk to the bot", action: ActionChat},
		item{title: "Add Knowledge", desc: "Teach a new input/response pair", action: ActionAdd},
		item{title: "Load Knowledge", desc: "Merge a JSON file or glob into the store", action: ActionLoad},
		item{title: "Save Knowledge", desc: "Write the store to a JSON file", action: ActionSave},
		item{title: "Import Spreadsheet", desc: "Add entries from an .xlsx file", action: ActionImport},
		item{title: "View Knowledge", desc: "Browse every stored entry", action: ActionViewKnowledge},
		item{title: "View Logs", desc: "Review this session's exchanges", action: ActionViewLogs},
		item{title: "Save Logs", desc: "Export the session log to a text file", action: ActionSaveLogs},
		item{title: "Quit", desc: "Exit the application", action: ActionQuit},
	}

	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = lipgloss.NewStyle().Foreground(Green).Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(Green).PaddingLeft(1)
	d.Styles.SelectedDesc = d.Styles.SelectedTitle.Foreground(DimGreen)

	l := list.New(items, d, 44, 24)
	l.Title = "Main Menu"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = lipgloss.NewStyle().Foreground(Green).Bold(true).MarginLeft(2)

	return MenuModel{list: l}
}

func (m MenuModel) Update(msg tea.Msg) (MenuModel, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m MenuModel) View() string {
	return MenuBoxStyle.Render(m.list.View())
}

// Selected returns the action under the cursor.
func (m MenuModel) Selected() Action {
	if it, ok := m.list.SelectedItem().(item); ok {
		return it.action
	}
	return ActionNone
}
