package nodes

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	contractx "github.com/charla-ai/charla/bot/contract"
	"github.com/charla-ai/charla/bot/tool"
)

// ExecuteTool runs the requested tool, if any. An unknown tool name demotes
// the response to a direct answer instead of failing the turn. A music hit is
// remembered so the final reply can carry the song card.
func ExecuteTool(ctx context.Context, in *GraphState, registry *tool.Registry) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	if in.PrimaryErr != nil || in.ToolCall == nil {
		return in, nil
	}

	handler, ok := registry.Lookup(in.ToolCall.Tool)
	if !ok {
		log.Warn().Str("tool", in.ToolCall.Tool).Msg("model requested unknown tool, answering directly")
		in.ToolCall = nil
		return in, nil
	}

	in.ToolResult = handler(ctx, in.ToolCall.Args)
	if in.ToolResult.Error == "" {
		if song, ok := in.ToolResult.Result.(contractx.Song); ok {
			in.Song = &song
		}
	}
	return in, nil
}
