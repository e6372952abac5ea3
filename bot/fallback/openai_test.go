package fallback

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	contractx "github.com/charla-ai/charla/bot/contract"
)

func TestNewRequiresAPIKey(t *testing.T) {
	t.Parallel()

	_, err := New(Config{})
	if !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("New() error = %v, want ErrValidation", err)
	}
}

func TestToMessagesRoleTranslation(t *testing.T) {
	t.Parallel()

	history := []contractx.Turn{
		{Role: contractx.RoleUser, Text: "hola"},
		{Role: contractx.RoleModel, Text: "buenas"},
		{Role: contractx.RoleUser, Text: "¿cómo estás?"},
	}

	messages := toMessages(history)
	if len(messages) != 3 {
		t.Fatalf("got %d messages, want 3", len(messages))
	}
	if messages[0].OfUser == nil || messages[2].OfUser == nil {
		t.Fatal("user turns must become user messages")
	}
	if messages[1].OfAssistant == nil {
		t.Fatal("model turns must become assistant messages")
	}
}

func TestCompleteReturnsFirstChoice(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id":"chatcmpl-1","object":"chat.completion","created":1,
			"model":"gpt-3.5-turbo",
			"choices":[{"index":0,"message":{"role":"assistant","content":"todo bien"},"finish_reason":"stop"}]
		}`))
	}))
	t.Cleanup(server.Close)

	client, err := New(Config{APIKey: "k", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	out, err := client.Complete(context.Background(), []contractx.Turn{
		{Role: contractx.RoleUser, Text: "¿cómo estás?"},
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if out != "todo bien" {
		t.Fatalf("Complete() = %q, want %q", out, "todo bien")
	}
}

func TestCompleteNoChoices(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"chatcmpl-2","object":"chat.completion","created":1,"model":"gpt-3.5-turbo","choices":[]}`))
	}))
	t.Cleanup(server.Close)

	client, err := New(Config{APIKey: "k", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = client.Complete(context.Background(), []contractx.Turn{
		{Role: contractx.RoleUser, Text: "hola"},
	})
	if !errors.Is(err, contractx.ErrModelInvoke) {
		t.Fatalf("Complete() error = %v, want ErrModelInvoke", err)
	}
}
