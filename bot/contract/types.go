package contract

import "time"

// Role identifies who produced a Turn. The values match what the primary
// model backend expects on replayed history.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn is one message in a conversation. Turns are immutable; their order
// inside a history is chronological and must be preserved when replayed.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Source labels which backend produced a turn's answer.
type Source string

const (
	SourceGemini Source = "gemini"
	SourceOpenAI Source = "openai"

	// SourceNone marks turns answered by the static apology, when neither
	// backend produced a response.
	SourceNone Source = "none"
)

// ToolRequest is the model backend's request to execute a named tool.
type ToolRequest struct {
	Tool string         `json:"tool"`
	Args map[string]any `json:"args,omitempty"`
}

// ToolResult is what an adapter hands back after executing a tool. Exactly
// one of the three outcomes is populated: Error for any failure, Summary
// (optionally with Result) for human-phrased outcomes, or Result alone for
// structured data. Adapters never signal domain failures through Go errors.
type ToolResult struct {
	Tool    string `json:"tool"`
	Result  any    `json:"result,omitempty"`
	Summary string `json:"summary,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Payload shapes the result as the JSON object resubmitted to the model.
func (r ToolResult) Payload() map[string]any {
	if r.Error != "" {
		return map[string]any{"error": r.Error}
	}
	out := map[string]any{}
	if r.Summary != "" {
		out["summary"] = r.Summary
	}
	if r.Result != nil {
		out["result"] = r.Result
	}
	return out
}

// Song is the structured payload returned by the music search tool and, when
// the turn completes on the primary path, surfaced to the caller as a card.
type Song struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Album  string `json:"album"`
	Link   string `json:"link"`
	Cover  string `json:"cover"`
}

// ReplyKind discriminates the reply union.
type ReplyKind string

const (
	ReplyText ReplyKind = "text"
	ReplySong ReplyKind = "song"
)

// Reply is the outcome of one orchestrated turn. Text always carries the
// final natural-language answer; Song is set only for ReplySong.
type Reply struct {
	Kind ReplyKind `json:"kind"`
	Text string    `json:"text"`
	Song *Song     `json:"song,omitempty"`
}

// Body returns the wire payload for the chat endpoint's response field:
// a plain string for text replies, the tagged structure for song replies.
func (r Reply) Body() any {
	if r.Kind == ReplySong && r.Song != nil {
		return r
	}
	return r.Text
}

// ModelResponse is one primary-backend answer: either plain text or a single
// tool invocation request. Backends emitting more than one call report only
// the first.
type ModelResponse struct {
	Text     string
	ToolCall *ToolRequest
}

// ConversationRecord is one persisted completed turn. Records are append-only
// and never mutated.
type ConversationRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserText  string    `json:"user_text"`
	BotText   string    `json:"bot_text"`
	Source    Source    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}
