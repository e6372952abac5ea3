// Package history assembles the effective conversation history for one
// request. Two sources exist: the server-authoritative persisted log when the
// caller is identified and a store is configured, and the caller-supplied
// history otherwise. The two are alternatives, never concatenated.
package history

import (
	"context"

	"github.com/rs/zerolog/log"

	contractx "github.com/charla-ai/charla/bot/contract"
)

// DefaultLimit is how many persisted records are replayed as context.
const DefaultLimit = 5

type Builder struct {
	store contractx.ConversationStore
	limit int
}

// NewBuilder creates a context builder. A nil store selects the
// caller-supplied-history mode for every request.
func NewBuilder(store contractx.ConversationStore, limit int) *Builder {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Builder{store: store, limit: limit}
}

// Build returns the history prefix for one request, oldest turn first. The
// new user turn is not included; the orchestrator appends it. A failed store
// read degrades to the client-supplied history and is only logged.
func (b *Builder) Build(ctx context.Context, userID string, clientHistory []contractx.Turn) []contractx.Turn {
	if b.store == nil || userID == "" {
		return cloneTurns(clientHistory)
	}

	records, err := b.store.Recent(ctx, userID, b.limit)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("history read failed, using client-supplied history")
		return cloneTurns(clientHistory)
	}

	return expand(records)
}

// expand converts persisted records (newest first, as the store returns them)
// into replayable turns, oldest conversation first, each as a (user, model)
// pair.
func expand(records []contractx.ConversationRecord) []contractx.Turn {
	turns := make([]contractx.Turn, 0, len(records)*2)
	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]
		turns = append(turns,
			contractx.Turn{Role: contractx.RoleUser, Text: rec.UserText},
			contractx.Turn{Role: contractx.RoleModel, Text: rec.BotText},
		)
	}
	return turns
}

func cloneTurns(turns []contractx.Turn) []contractx.Turn {
	if len(turns) == 0 {
		return []contractx.Turn{}
	}
	out := make([]contractx.Turn, len(turns))
	copy(out, turns)
	return out
}
