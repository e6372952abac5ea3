// Package nodes holds the orchestration graph's node functions and the state
// they thread. Each node takes the state, does one step of the turn, and
// hands the state on; branching decisions live inside the nodes so the graph
// stays linear.
package nodes

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/charla-ai/charla/bot/contract"
)

var ErrInvalidMessage = fmt.Errorf("%w: message is empty", contractx.ErrValidation)

type GraphInput struct {
	UserID  string
	Message string

	// ClientHistory is the caller-supplied history, used only when no
	// server-side log applies to this request.
	ClientHistory []contractx.Turn
}

type GraphOutput struct {
	Reply   contractx.Reply
	History []contractx.Turn
}

// GraphState carries one turn through the graph. PrimaryErr is how a failed
// primary path travels to the fallback node without aborting the graph.
type GraphState struct {
	UserID  string
	Message string
	Now     time.Time

	ClientHistory []contractx.Turn

	// History is the effective history, ending with the new user turn once
	// build_context has run.
	History []contractx.Turn

	Primary    contractx.ModelResponse
	PrimaryErr error

	ToolCall   *contractx.ToolRequest
	ToolResult contractx.ToolResult

	FinalText string
	Song      *contractx.Song
	Source    contractx.Source
}

func ValidateRequest(in GraphInput, now func() time.Time) (*GraphState, error) {
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return nil, ErrInvalidMessage
	}
	if now == nil {
		now = time.Now
	}

	return &GraphState{
		UserID:        strings.TrimSpace(in.UserID),
		Message:       message,
		Now:           now().UTC(),
		ClientHistory: in.ClientHistory,
	}, nil
}
