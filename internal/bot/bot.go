// Package bot composes normalization, knowledge lookup, and conversation
// logging into a single ask operation. It holds no state of its own beyond
// the display name; the store and log are owned by the caller so several
// bots could share or swap them.
package bot

import (
	"github.com/jeanpaul/minigpt/internal/chatlog"
	"github.com/jeanpaul/minigpt/internal/knowledge"
	"github.com/jeanpaul/minigpt/internal/nlp"
)

type Bot struct {
	Name  string
	store *knowledge.Store
	log   *chatlog.Log
}

func New(name string, store *knowledge.Store, log *chatlog.Log) *Bot {
	return &Bot{Name: name, store: store, log: log}
}

// Ask answers one chat turn: normalize the raw input, look it up, record
// the exchange, return the response. No caching, no retry.
func (b *Bot) Ask(rawInput string) string {
	key := nlp.Normalize(rawInput)
	response := b.store.Lookup(key)
	b.log.Append(key, response)
	return response
}
