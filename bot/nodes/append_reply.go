package nodes

import (
	"fmt"

	contractx "github.com/charla-ai/charla/bot/contract"
)

// AppendReply appends exactly one model turn with the settled answer, keeping
// the history's strict user/model alternation.
func AppendReply(in *GraphState) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	in.History = append(in.History, contractx.Turn{Role: contractx.RoleModel, Text: in.FinalText})
	return in, nil
}
