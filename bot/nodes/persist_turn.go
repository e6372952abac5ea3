package nodes

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	contractx "github.com/charla-ai/charla/bot/contract"
)

// PersistTurn appends the completed turn to the conversation log. Persistence
// is best effort: anonymous turns and nil stores skip it, and a write failure
// is logged without touching the reply.
func PersistTurn(ctx context.Context, in *GraphState, store contractx.ConversationStore) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	if store == nil || in.UserID == "" {
		return in, nil
	}

	rec := &contractx.ConversationRecord{
		UserID:    in.UserID,
		UserText:  in.Message,
		BotText:   in.FinalText,
		Source:    in.Source,
		CreatedAt: in.Now,
	}
	if err := store.Append(ctx, rec); err != nil {
		log.Warn().Err(err).Str("user_id", in.UserID).Msg("conversation append failed")
	}
	return in, nil
}
