// Package console implements the classic numbered-menu interface on plain
// line-based input/output. It is what runs when no TTY is available (pipes,
// CI) or when the user passes --console. All state lives in the core
// components; this layer only prompts, parses, and dispatches.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jeanpaul/minigpt/internal/bot"
	"github.com/jeanpaul/minigpt/internal/chatlog"
	"github.com/jeanpaul/minigpt/internal/knowledge"
	"github.com/jeanpaul/minigpt/internal/nlp"
)

const menu = `
1. Start Chat
2. Add Knowledge
3. Load Knowledge
4. Save Knowledge
5. Import Spreadsheet
6. View Knowledge
7. View Logs
8. Save Logs
9. Exit`

type UI struct {
	in      *bufio.Scanner
	out     io.Writer
	bot     *bot.Bot
	store   *knowledge.Store
	log     *chatlog.Log
	logFile string
}

func New(b *bot.Bot, store *knowledge.Store, log *chatlog.Log, logFile string, in io.Reader, out io.Writer) *UI {
	u := &UI{
		in:      bufio.NewScanner(in),
		out:     out,
		bot:     b,
		store:   store,
		log:     log,
		logFile: logFile,
	}
	store.Notify = u.printf
	log.Notify = u.printf
	return u
}

// Run drives the main menu until the user exits or input ends.
func (u *UI) Run() error {
	u.printf("Hi! I'm %s.", u.bot.Name)

	for {
		fmt.Fprintln(u.out, menu)
		choice, ok := u.prompt("Enter your choice: ")
		if !ok {
			return nil
		}

		switch strings.TrimSpace(choice) {
		case "1":
			u.chat()
		case "2":
			u.addKnowledge()
		case "3":
			u.loadKnowledge()
		case "4":
			u.saveKnowledge()
		case "5":
			u.importSpreadsheet()
		case "6":
			u.viewKnowledge()
		case "7":
			u.log.Display(u.out)
		case "8":
			u.log.Save(u.logFile)
		case "9":
			u.printf("Goodbye!")
			return nil
		default:
			u.printf("Invalid choice. Please try again.")
		}
	}
}

func (u *UI) chat() {
	u.printf("Ask me anything, or type 'exit' to leave the chat.")
	for {
		line, ok := u.prompt("You: ")
		if !ok || strings.EqualFold(strings.TrimSpace(line), "exit") {
			u.printf("Exiting chat.")
			return
		}
		u.printf("%s: %s", u.bot.Name, u.bot.Ask(line))
	}
}

func (u *UI) addKnowledge() {
	input, ok := u.prompt("Enter the user input: ")
	if !ok {
		return
	}
	response, ok := u.prompt("Enter the response: ")
	if !ok {
		return
	}

	// Keys are stored in canonical form so chat lookups can find them.
	u.store.Add(nlp.Normalize(input), response)
	u.store.Save(u.store.Path())
}

func (u *UI) loadKnowledge() {
	path, ok := u.prompt("File path or glob to load (empty for %q): ", u.store.Path())
	if !ok {
		return
	}
	path = strings.TrimSpace(path)
	switch {
	case path == "":
		u.store.Load(u.store.Path())
	case strings.ContainsAny(path, "*?["):
		u.store.LoadGlob(path)
	default:
		u.store.Load(path)
	}
}

func (u *UI) saveKnowledge() {
	path, ok := u.prompt("File path to save (empty for %q): ", u.store.Path())
	if !ok {
		return
	}
	if path = strings.TrimSpace(path); path == "" {
		path = u.store.Path()
	}
	u.store.Save(path)
}

func (u *UI) importSpreadsheet() {
	path, ok := u.prompt("Spreadsheet path (.xlsx): ")
	if !ok {
		return
	}
	u.store.ImportXLSX(strings.TrimSpace(path))
}

func (u *UI) viewKnowledge() {
	entries := u.store.All()
	if len(entries) == 0 {
		u.printf("Knowledge base is empty.")
		return
	}
	u.printf("Current Knowledge Base:")
	for _, e := range entries {
		u.printf("Input: %s | Response: %s", e.Key, e.Response)
	}
}

// prompt prints a prompt and reads one line. ok is false at end of input.
func (u *UI) prompt(format string, args ...any) (string, bool) {
	fmt.Fprintf(u.out, format, args...)
	if !u.in.Scan() {
		return "", false
	}
	return u.in.Text(), true
}

func (u *UI) printf(format string, args ...any) {
	fmt.Fprintf(u.out, format+"\n", args...)
}
