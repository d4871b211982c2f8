package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Core palette
	Green       = lipgloss.Color("#00FF41")
	BrightGreen = lipgloss.Color("#39FF14")
	DarkGreen   = lipgloss.Color("#008F11")
	DimGreen    = lipgloss.Color("#003B00")
	Cyan        = lipgloss.Color("#00D4AA")
	Black       = lipgloss.Color("#0D0208")
	MidGray     = lipgloss.Color("#3a3a4e")
	LightGray   = lipgloss.Color("#aaaaaa")
	White       = lipgloss.Color("#e0e0e0")

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Background(DarkGreen).
			Foreground(Black).
			Bold(true).
			Padding(0, 1)

	// User messages
	UserLabelStyle = lipgloss.NewStyle().
			Foreground(BrightGreen).
			Bold(true)

	UserMsgStyle = lipgloss.NewStyle().
			Foreground(Green)

	// Bot messages
	BotLabelStyle = lipgloss.NewStyle().
			Foreground(Cyan).
			Bold(true)

	BotMsgStyle = lipgloss.NewStyle().
			Foreground(White)

	// Status notices (load/save outcomes)
	NoticeStyle = lipgloss.NewStyle().
			Foreground(MidGray).
			Italic(true)

	PromptStyle = lipgloss.NewStyle().
			Foreground(BrightGreen).
			Bold(true)

	WarnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	MenuBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DarkGreen).
			Padding(1, 2)

	HelpStyle = lipgloss.NewStyle().
			Foreground(LightGray)
)
