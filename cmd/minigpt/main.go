package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeanpaul/minigpt/internal/bot"
	"github.com/jeanpaul/minigpt/internal/chatlog"
	"github.com/jeanpaul/minigpt/internal/config"
	"github.com/jeanpaul/minigpt/internal/console"
	"github.com/jeanpaul/minigpt/internal/knowledge"
	"github.com/jeanpaul/minigpt/internal/tui"
	"github.com/jeanpaul/minigpt/pkg/version"
)

func main() {
	knowledgeFlag := flag.String("knowledge", "", "Knowledge file path (overrides config)")
	logsFlag := flag.String("logs", "", "Log export path (overrides config)")
	consoleFlag := flag.Bool("console", false, "Run the plain console menu instead of the TUI")
	initConfigFlag := flag.Bool("init-config", false, "Write a starter config file and exit")
	versionFlag := flag.Bool("version", false, "Print version")
	helpFlag := flag.Bool("help", false, "Show help")
	flag.BoolVar(helpFlag, "h", false, "Show help")

	flag.Usage = showHelp
	flag.Parse()

	if *helpFlag {
		showHelp()
		os.Exit(0)
	}
	if *versionFlag {
		fmt.Printf("minigpt %s (%s)\n", version.Version, version.Commit)
		os.Exit(0)
	}
	if *initConfigFlag {
		path, err := config.WriteDefault()
		if err != nil {
			fatal("Failed to write config: %v", err)
		}
		fmt.Printf("Wrote %s\n", path)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fatal("Failed to load config: %v", err)
	}
	if *knowledgeFlag != "" {
		cfg.KnowledgeFile = *knowledgeFlag
	}
	if *logsFlag != "" {
		cfg.LogFile = *logsFlag
	}

	store := knowledge.NewStore(cfg.KnowledgeFile)
	log := chatlog.NewLog()
	b := bot.New(cfg.BotName, store, log)

	// Pull in existing knowledge up front; a missing file just starts fresh.
	store.Load(store.Path())

	if *consoleFlag {
		ui := console.New(b, store, log, cfg.LogFile, os.Stdin, os.Stdout)
		if err := ui.Run(); err != nil {
			fatal("Console error: %v", err)
		}
		return
	}

	p := tea.NewProgram(tui.NewModel(b, store, log, cfg.LogFile), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fatal("TUI error: %v", err)
	}
}

func showHelp() {
	fmt.Println(`minigpt — menu-driven chatbot over a JSON knowledge base

Usage:
  minigpt [flags]

Flags:
  --knowledge <path>   Knowledge file (default from config, knowledge_base.json)
  --logs <path>        Log export path (default conversation_logs.txt)
  --console            Plain line-based menu (for pipes and dumb terminals)
  --init-config        Write a starter config.yaml and exit
  --version            Print version
  -h, --help           Show this help

Configuration is read from ./config.yaml or ~/.config/minigpt/config.yaml,
with MINIGPT_* environment variables taking precedence.`)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
