package nodes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cloudwego/eino/schema"

	contractx "github.com/charla-ai/charla/bot/contract"
	"github.com/charla-ai/charla/bot/tool"
)

func TestValidateRequestTrimsAndStamps(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	st, err := ValidateRequest(GraphInput{UserID: " u-1 ", Message: "  hola  "}, func() time.Time { return fixed })
	if err != nil {
		t.Fatalf("ValidateRequest() error = %v", err)
	}
	if st.UserID != "u-1" || st.Message != "hola" {
		t.Fatalf("state = %+v", st)
	}
	if !st.Now.Equal(fixed) {
		t.Fatalf("Now = %v, want %v", st.Now, fixed)
	}
}

func TestValidateRequestEmptyMessage(t *testing.T) {
	t.Parallel()

	_, err := ValidateRequest(GraphInput{Message: "   "}, nil)
	if !errors.Is(err, ErrInvalidMessage) {
		t.Fatalf("error = %v, want ErrInvalidMessage", err)
	}
	if !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("ErrInvalidMessage must wrap the validation sentinel, got %v", err)
	}
}

func TestExecuteToolUnknownNameAnswersDirectly(t *testing.T) {
	t.Parallel()

	reg := tool.NewRegistry()
	if err := reg.Register(&schema.ToolInfo{Name: "known"}, func(context.Context, map[string]any) contractx.ToolResult {
		t.Fatal("handler must not run for an unknown tool")
		return contractx.ToolResult{}
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	st := &GraphState{
		Primary:  contractx.ModelResponse{ToolCall: &contractx.ToolRequest{Tool: "unknown"}},
		ToolCall: &contractx.ToolRequest{Tool: "unknown"},
	}
	out, err := ExecuteTool(context.Background(), st, reg)
	if err != nil {
		t.Fatalf("ExecuteTool() error = %v", err)
	}
	if out.ToolCall != nil {
		t.Fatal("unknown tool call must be demoted to a direct answer")
	}
}

func TestFallbackCallKeepsPrimaryAnswer(t *testing.T) {
	t.Parallel()

	st := &GraphState{Primary: contractx.ModelResponse{Text: "listo"}}
	out, err := FallbackCall(context.Background(), st, nil, contractx.SourceGemini)
	if err != nil {
		t.Fatalf("FallbackCall() error = %v", err)
	}
	if out.FinalText != "listo" || out.Source != contractx.SourceGemini {
		t.Fatalf("state = %+v", out)
	}
}

func TestFallbackCallApologyWithoutFallback(t *testing.T) {
	t.Parallel()

	song := contractx.Song{Title: "x"}
	st := &GraphState{
		PrimaryErr: errors.New("down"),
		Song:       &song,
	}
	out, err := FallbackCall(context.Background(), st, nil, contractx.SourceGemini)
	if err != nil {
		t.Fatalf("FallbackCall() error = %v", err)
	}
	if out.FinalText != ApologyText || out.Source != contractx.SourceNone {
		t.Fatalf("state = %+v", out)
	}
	if out.Song != nil {
		t.Fatal("song card must be dropped off the primary path")
	}
}
