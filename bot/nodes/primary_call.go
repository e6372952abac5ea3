package nodes

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	contractx "github.com/charla-ai/charla/bot/contract"
	"github.com/charla-ai/charla/bot/retry"
)

// PrimaryCall asks the primary backend for an answer, retrying rate limits.
// Failure does not abort the graph: the error is parked on the state so the
// fallback node can take over.
func PrimaryCall(ctx context.Context, in *GraphState, primary contractx.PrimaryModel, policy retry.Policy) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	resp, err := retry.Do(ctx, policy, func(ctx context.Context) (contractx.ModelResponse, error) {
		return primary.Generate(ctx, in.History)
	})
	if err != nil {
		log.Warn().Err(err).Str("source", string(primary.Source())).Msg("primary generate failed")
		in.PrimaryErr = err
		return in, nil
	}

	in.Primary = resp
	in.ToolCall = resp.ToolCall
	return in, nil
}
