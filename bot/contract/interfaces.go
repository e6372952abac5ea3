package contract

import "context"

// PrimaryModel is the tool-aware backend tried first for every turn. The
// implementation owns the tool declarations; Generate may answer directly or
// request one tool invocation. SubmitToolResult continues the same turn with
// the executed tool's output and returns the final answer.
type PrimaryModel interface {
	Source() Source
	Generate(ctx context.Context, history []Turn) (ModelResponse, error)
	SubmitToolResult(ctx context.Context, history []Turn, call ToolRequest, result ToolResult) (ModelResponse, error)
}

// FallbackModel is the text-only backend used when the primary path fails.
// It has no tool access.
type FallbackModel interface {
	Source() Source
	Complete(ctx context.Context, history []Turn) (string, error)
}

// ConversationStore is the append log of completed turns, keyed by user.
// Recent returns at most limit records, newest first.
type ConversationStore interface {
	Recent(ctx context.Context, userID string, limit int) ([]ConversationRecord, error)
	Append(ctx context.Context, rec *ConversationRecord) error
}

// TokenVerifier resolves a bearer token to a user identity. Verification
// itself lives outside this module; implementations adapt whatever identity
// provider the deployment uses.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}
