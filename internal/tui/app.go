package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeanpaul/minigpt/internal/bot"
	"github.com/jeanpaul/minigpt/internal/chatlog"
	"github.com/jeanpaul/minigpt/internal/knowledge"
	"github.com/jeanpaul/minigpt/internal/nlp"
)

type uiState int

const (
	stateMenu uiState = iota
	stateChat
	statePromptKey      // "Add Knowledge": asking for the user input
	statePromptResponse // "Add Knowledge": asking for the response
	statePromptPath     // load/save/import: asking for a file path
	stateView           // read-only viewport (knowledge, logs)
	stateConfirmQuit
)

type chatMessage struct {
	role    string // "user", "bot", "notice"
	content string
}

// notices collects status messages from the store and log. It is shared by
// pointer so the hooks survive bubbletea's value-copied model updates.
type notices struct {
	lines []string
}

func (n *notices) addf(format string, args ...any) {
	n.lines = append(n.lines, fmt.Sprintf(format, args...))
}

// tail returns the most recent k notices.
func (n *notices) tail(k int) []string {
	if len(n.lines) <= k {
		return n.lines
	}
	return n.lines[len(n.lines)-k:]
}

type Model struct {
	width, height int
	state         uiState

	menu     MenuModel
	input    textinput.Model
	viewport viewport.Model
	renderer *glamour.TermRenderer

	bot     *bot.Bot
	store   *knowledge.Store
	log     *chatlog.Log
	logFile string

	transcript []chatMessage
	status     *notices

	pendingAction Action // which admin action the path prompt belongs to
	pendingKey    string // canonical key captured during Add Knowledge
	viewTitle     string
}

func NewModel(b *bot.Bot, store *knowledge.Store, log *chatlog.Log, logFile string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.PromptStyle = PromptStyle
	ti.CharLimit = 0

	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true

	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)

	st := &notices{}
	store.Notify = st.addf
	log.Notify = st.addf

	m := Model{
		menu:     NewMenuModel(),
		input:    ti,
		viewport: vp,
		renderer: r,
		bot:      b,
		store:    store,
		log:      log,
		logFile:  logFile,
		status:   st,
	}
	m.transcript = append(m.transcript, chatMessage{
		role:    "notice",
		content: fmt.Sprintf("Hi! I'm %s. Ask me anything; I answer from my knowledge base.", b.Name),
	})
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 4
		m.input.Width = msg.Width - 4
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.state {
		case stateMenu:
			return m.updateMenu(msg)
		case stateChat:
			return m.updateChat(msg)
		case statePromptKey, statePromptResponse, statePromptPath:
			return m.updatePrompt(msg)
		case stateView:
			if msg.String() == "esc" || msg.String() == "q" {
				m.state = stateMenu
				return m, nil
			}
		case stateConfirmQuit:
			return m.updateConfirmQuit(msg)
		}
	}

	var cmd tea.Cmd
	if m.state == stateView {
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.tryQuit()
	case "enter":
		return m.dispatch(m.menu.Selected())
	}
	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m Model) dispatch(action Action) (tea.Model, tea.Cmd) {
	switch action {
	case ActionChat:
		m.state = stateChat
		m.input.Placeholder = "Type your message..."
		m.refreshTranscript()
		return m, m.focusInput()

	case ActionAdd:
		m.state = statePromptKey
		m.input.Placeholder = "The user input to recognize"
		return m, m.focusInput()

	case ActionLoad:
		m.pendingAction = ActionLoad
		m.state = statePromptPath
		m.input.Placeholder = fmt.Sprintf("Path or glob (empty for %s)", m.store.Path())
		return m, m.focusInput()

	case ActionSave:
		m.pendingAction = ActionSave
		m.state = statePromptPath
		m.input.Placeholder = fmt.Sprintf("Path (empty for %s)", m.store.Path())
		return m, m.focusInput()

	case ActionImport:
		m.pendingAction = ActionImport
		m.state = statePromptPath
		m.input.Placeholder = "Spreadsheet path (.xlsx)"
		return m, m.focusInput()

	case ActionViewKnowledge:
		m.showView("Knowledge Base", m.knowledgeMarkdown())
		return m, nil

	case ActionViewLogs:
		var sb strings.Builder
		m.log.Display(&sb)
		m.showView("Conversation Logs", "```\n"+sb.String()+"```")
		return m, nil

	case ActionSaveLogs:
		m.log.Save(m.logFile)
		return m, nil

	case ActionQuit:
		return m.tryQuit()
	}
	return m, nil
}

func (m Model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = stateMenu
		m.input.Blur()
		return m, nil
	case "enter":
		raw := m.input.Value()
		if strings.TrimSpace(raw) == "" {
			return m, nil
		}
		m.input.SetValue("")

		response := m.bot.Ask(raw)
		m.transcript = append(m.transcript,
			chatMessage{role: "user", content: nlp.Normalize(raw)},
			chatMessage{role: "bot", content: response},
		)
		m.refreshTranscript()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = stateMenu
		m.input.Blur()
		m.input.SetValue("")
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		m.input.SetValue("")
		return m.submitPrompt(value)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submitPrompt(value string) (tea.Model, tea.Cmd) {
	switch m.state {
	case statePromptKey:
		// Keys go in canonical form so chat lookups can find them.
		m.pendingKey = nlp.Normalize(value)
		m.state = statePromptResponse
		m.input.Placeholder = "The response to give"
		return m, nil

	case statePromptResponse:
		m.store.Add(m.pendingKey, value)
		m.store.Save(m.store.Path())
		m.pendingKey = ""
		m.state = stateMenu
		m.input.Blur()
		return m, nil

	case statePromptPath:
		switch m.pendingAction {
		case ActionLoad:
			switch {
			case value == "":
				m.store.Load(m.store.Path())
			case strings.ContainsAny(value, "*?["):
				m.store.LoadGlob(value)
			default:
				m.store.Load(value)
			}
		case ActionSave:
			if value == "" {
				value = m.store.Path()
			}
			m.store.Save(value)
		case ActionImport:
			if value != "" {
				m.store.ImportXLSX(value)
			}
		}
		m.pendingAction = ActionNone
		m.state = stateMenu
		m.input.Blur()
	}
	return m, nil
}

func (m Model) updateConfirmQuit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "s":
		m.store.Save(m.store.Path())
		return m, tea.Quit
	case "y":
		return m, tea.Quit
	case "esc", "n":
		m.state = stateMenu
	}
	return m, nil
}

func (m Model) tryQuit() (tea.Model, tea.Cmd) {
	if m.store.Dirty() {
		m.state = stateConfirmQuit
		return m, nil
	}
	return m, tea.Quit
}

func (m *Model) focusInput() tea.Cmd {
	m.input.SetValue("")
	return m.input.Focus()
}

func (m *Model) showView(title, markdown string) {
	m.viewTitle = title
	rendered, err := m.renderer.Render(markdown)
	if err != nil {
		rendered = markdown
	}
	m.viewport.SetContent(rendered)
	m.viewport.GotoTop()
	m.state = stateView
}

func (m *Model) refreshTranscript() {
	var sb strings.Builder
	for _, msg := range m.transcript {
		switch msg.role {
		case "user":
			sb.WriteString(UserLabelStyle.Render("You: ") + UserMsgStyle.Render(msg.content))
		case "bot":
			sb.WriteString(BotLabelStyle.Render(m.bot.Name+": ") + BotMsgStyle.Render(msg.content))
		case "notice":
			sb.WriteString(NoticeStyle.Render(msg.content))
		}
		sb.WriteString("\n")
	}
	m.viewport.SetContent(sb.String())
	m.viewport.GotoBottom()
}

func (m *Model) knowledgeMarkdown() string {
	entries := m.store.All()
	if len(entries) == 0 {
		return "# Knowledge Base\n\n*No entries yet. Use Add Knowledge or Load Knowledge.*"
	}

	var sb strings.Builder
	sb.WriteString("# Knowledge Base\n\n")
	sb.WriteString("| Input | Response |\n|---|---|\n")
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("| %s | %s |\n", escapeCell(e.Key), escapeCell(e.Response)))
	}
	return sb.String()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}

func (m Model) View() string {
	header := StatusBarStyle.Render(fmt.Sprintf(" %s — %d entries — %d exchanges ",
		m.bot.Name, m.store.Len(), m.log.Len()))

	var body, help string
	switch m.state {
	case stateMenu:
		body = m.menu.View()
		help = "enter: select • q: quit"
	case stateChat:
		body = m.viewport.View() + "\n" + m.input.View()
		help = "enter: send • esc: menu"
	case statePromptKey, statePromptResponse, statePromptPath:
		body = m.input.View()
		help = "enter: confirm • esc: cancel"
	case stateView:
		body = PromptStyle.Render(m.viewTitle) + "\n" + m.viewport.View()
		help = "↑/↓: scroll • esc: menu"
	case stateConfirmQuit:
		body = WarnStyle.Render("Unsaved knowledge changes.") +
			"\n\ns: save and quit • y: quit anyway • esc: cancel"
	}

	statusLines := ""
	if lines := m.status.tail(3); len(lines) > 0 {
		statusLines = "\n" + NoticeStyle.Render(strings.Join(lines, "\n"))
	}

	return header + "\n" + body + statusLines + "\n" + HelpStyle.Render(help)
}
