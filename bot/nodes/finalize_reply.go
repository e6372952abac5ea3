package nodes

import (
	"fmt"

	contractx "github.com/charla-ai/charla/bot/contract"
)

// FinalizeReply shapes the outward reply and hands back the updated history.
func FinalizeReply(in *GraphState) (GraphOutput, error) {
	if in == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	reply := contractx.Reply{Kind: contractx.ReplyText, Text: in.FinalText}
	if in.Song != nil {
		reply.Kind = contractx.ReplySong
		reply.Song = in.Song
	}

	return GraphOutput{Reply: reply, History: in.History}, nil
}
