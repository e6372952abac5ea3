// Package orchestrator runs one conversational turn end to end: context
// assembly, the tool-aware primary call, tool execution and resubmission, the
// fallback path, and best-effort persistence.
package orchestrator

import (
	"context"
	"errors"
	"time"

	"github.com/cloudwego/eino/compose"

	contractx "github.com/charla-ai/charla/bot/contract"
	"github.com/charla-ai/charla/bot/history"
	nodex "github.com/charla-ai/charla/bot/nodes"
	"github.com/charla-ai/charla/bot/retry"
	"github.com/charla-ai/charla/bot/tool"
)

var ErrInvalidMessage = nodex.ErrInvalidMessage

type Orchestrator struct {
	primary  contractx.PrimaryModel
	fallback contractx.FallbackModel
	registry *tool.Registry
	store    contractx.ConversationStore
	builder  *history.Builder

	policy retry.Policy

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]

	historyLimit int
	now          func() time.Time
}

type Option func(*Orchestrator)

// WithHistoryLimit bounds how many persisted turns are replayed as context.
func WithHistoryLimit(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.historyLimit = n
		}
	}
}

// WithRetryPolicy overrides the backoff budget for model calls.
func WithRetryPolicy(p retry.Policy) Option {
	return func(o *Orchestrator) {
		o.policy = p
	}
}

// WithClock fixes the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		if now != nil {
			o.now = now
		}
	}
}

// New wires the turn graph. The fallback model and the store may be nil: the
// former degrades dual failures straight to the apology, the latter selects
// the caller-supplied-history mode for every request.
func New(
	primary contractx.PrimaryModel,
	fallback contractx.FallbackModel,
	registry *tool.Registry,
	store contractx.ConversationStore,
	opts ...Option,
) (*Orchestrator, error) {
	if primary == nil {
		return nil, errors.New("primary model is required")
	}
	if registry == nil {
		return nil, errors.New("tool registry is required")
	}

	o := &Orchestrator{
		primary:      primary,
		fallback:     fallback,
		registry:     registry,
		store:        store,
		policy:       retry.NewPolicy(),
		historyLimit: history.DefaultLimit,
		now:          time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	o.builder = history.NewBuilder(store, o.historyLimit)

	graphRunner, err := o.compileHandleMessageGraph(context.Background())
	if err != nil {
		return nil, err
	}
	o.graphRunner = graphRunner

	return o, nil
}

// HandleMessage runs one turn. It returns the reply and the updated history,
// which always contains exactly one new user turn and one new model turn.
func (o *Orchestrator) HandleMessage(
	ctx context.Context,
	userID string,
	message string,
	clientHistory []contractx.Turn,
) (contractx.Reply, []contractx.Turn, error) {
	out, err := o.graphRunner.Invoke(ctx, nodex.GraphInput{
		UserID:        userID,
		Message:       message,
		ClientHistory: clientHistory,
	})
	if err != nil {
		return contractx.Reply{}, nil, err
	}
	return out.Reply, out.History, nil
}
