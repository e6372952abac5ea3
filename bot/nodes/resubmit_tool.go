package nodes

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	contractx "github.com/charla-ai/charla/bot/contract"
	"github.com/charla-ai/charla/bot/retry"
)

// ResubmitTool hands the executed tool's payload back to the primary backend
// for the final natural-language answer. A failure here routes the turn to
// the fallback, same as a failed first call.
func ResubmitTool(ctx context.Context, in *GraphState, primary contractx.PrimaryModel, policy retry.Policy) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	if in.PrimaryErr != nil || in.ToolCall == nil {
		return in, nil
	}

	resp, err := retry.Do(ctx, policy, func(ctx context.Context) (contractx.ModelResponse, error) {
		return primary.SubmitToolResult(ctx, in.History, *in.ToolCall, in.ToolResult)
	})
	if err != nil {
		log.Warn().Err(err).Str("tool", in.ToolCall.Tool).Msg("tool result resubmission failed")
		in.PrimaryErr = err
		return in, nil
	}

	// One tool invocation per turn: a second call request is ignored and the
	// text, if any, is taken as the answer.
	if resp.ToolCall != nil {
		log.Warn().Str("tool", resp.ToolCall.Tool).Msg("model requested a second tool call, ignoring")
	}
	in.Primary = contractx.ModelResponse{Text: resp.Text}
	return in, nil
}
