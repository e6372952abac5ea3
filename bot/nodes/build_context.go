package nodes

import (
	"context"
	"fmt"

	contractx "github.com/charla-ai/charla/bot/contract"
	"github.com/charla-ai/charla/bot/history"
)

// BuildContext assembles the effective history and appends the new user turn
// to it. Everything downstream replays in.History as-is.
func BuildContext(ctx context.Context, in *GraphState, builder *history.Builder) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	turns := builder.Build(ctx, in.UserID, in.ClientHistory)
	in.History = append(turns, contractx.Turn{Role: contractx.RoleUser, Text: in.Message})
	return in, nil
}
