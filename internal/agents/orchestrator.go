// Package agents drives one conversation turn: it feeds the history plus
// system prompt to the chat model, follows the model's choice between free
// text and a single tool call, and streams partial display values to the
// caller while the turn is in flight.
package agents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"cryptochat/config"
	"cryptochat/internal/chat"
	"cryptochat/internal/tools"
	"cryptochat/internal/ui"
)

// State is the orchestrator's turn phase.
type State int32

const (
	StateIdle State = iota
	StateAwaitingModel
	StateStreamingText
	StateDispatchingTool
	StateFinalizing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingModel:
		return "awaiting_model"
	case StateStreamingText:
		return "streaming_text"
	case StateDispatchingTool:
		return "dispatching_tool"
	case StateFinalizing:
		return "finalizing"
	default:
		return "unknown"
	}
}

var (
	ErrEmptyMessage = errors.New("empty user message")
	ErrTurnInFlight = errors.New("a turn is already in flight")
)

// Orchestrator owns one session's turn loop. It is the only writer of the
// session's History besides the tools it dispatches, and those two commit
// paths are mutually exclusive within a turn.
type Orchestrator struct {
	cfg      *config.Config
	model    model.ToolCallingChatModel
	registry *tools.Registry
	history  *chat.History
	feed     *ui.Feed
	state    atomic.Int32
}

func NewOrchestrator(cfg *config.Config, chatModel model.ToolCallingChatModel, registry *tools.Registry, history *chat.History, feed *ui.Feed) (*Orchestrator, error) {
	bound, err := chatModel.WithTools(registry.Infos())
	if err != nil {
		return nil, fmt.Errorf("bind tools: %w", err)
	}
	return &Orchestrator{
		cfg:      cfg,
		model:    bound,
		registry: registry,
		history:  history,
		feed:     feed,
	}, nil
}

func (o *Orchestrator) State() State {
	return State(o.state.Load())
}

func (o *Orchestrator) History() *chat.History {
	return o.history
}

func (o *Orchestrator) Feed() *ui.Feed {
	return o.feed
}

// SubmitUserMessage runs one turn. onUpdate (optional) receives the
// in-flight renderables: the initial spinner, accumulated text while a text
// turn streams, and a tool's loading placeholder. The returned record is
// the turn's final display value, already appended to the feed.
//
// On failure the history keeps the user message but gains no assistant
// entry, and nothing is appended to the feed for the assistant side.
func (o *Orchestrator) SubmitUserMessage(ctx context.Context, text string, onUpdate func(ui.Renderable)) (*ui.DisplayRecord, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	if !o.state.CompareAndSwap(int32(StateIdle), int32(StateAwaitingModel)) {
		return nil, ErrTurnInFlight
	}
	defer o.state.Store(int32(StateIdle))

	if onUpdate == nil {
		onUpdate = func(ui.Renderable) {}
	}

	o.history.Append(chat.Message{Role: chat.RoleUser, Content: text})
	o.feed.Append(ui.DisplayRecord{Role: chat.RoleUser, Renderable: ui.TextMessage{Text: text}})

	onUpdate(ui.Spinner{})

	msgs := o.history.ModelMessages(SystemPrompt, o.cfg.MaxHistoryMessages)
	reply, err := o.consumeStream(ctx, msgs, onUpdate)
	if err != nil {
		return nil, err
	}

	var final ui.Renderable
	var pending []ui.ToolInvocation

	if len(reply.ToolCalls) > 0 {
		// The model asked for a tool; any text it emitted alongside is
		// discarded so at most one commit path runs.
		o.state.Store(int32(StateDispatchingTool))

		call := reply.ToolCalls[0]
		tool, ok := o.registry.Lookup(call.Function.Name)
		if !ok {
			return nil, fmt.Errorf("model requested unknown tool %q", call.Function.Name)
		}
		pending = []ui.ToolInvocation{{Name: call.Function.Name, Arguments: call.Function.Arguments}}

		final, err = tool.Generate(ctx, call.Function.Arguments, onUpdate)
		if err != nil {
			return nil, err
		}
	} else {
		o.history.Append(chat.Message{Role: chat.RoleAssistant, Content: reply.Content})
		final = ui.TextMessage{Text: reply.Content}
	}

	o.state.Store(int32(StateFinalizing))
	rec := o.feed.Append(ui.DisplayRecord{
		Role:             chat.RoleAssistant,
		Renderable:       final,
		PendingToolCalls: pending,
	})
	return &rec, nil
}

// consumeStream drains the model's incremental output, pushing accumulated
// text through onUpdate until a tool-call chunk appears, and returns the
// concatenated reply.
func (o *Orchestrator) consumeStream(ctx context.Context, msgs []*schema.Message, onUpdate func(ui.Renderable)) (*schema.Message, error) {
	sr, err := o.model.Stream(ctx, msgs, model.WithTemperature(0))
	if err != nil {
		return nil, fmt.Errorf("model stream: %w", err)
	}
	defer sr.Close()

	var chunks []*schema.Message
	var acc strings.Builder
	toolSeen := false

	for {
		msg, err := sr.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("model stream: %w", err)
		}

		chunks = append(chunks, msg)
		if len(msg.ToolCalls) > 0 {
			toolSeen = true
		}
		if !toolSeen && msg.Content != "" {
			o.state.Store(int32(StateStreamingText))
			acc.WriteString(msg.Content)
			onUpdate(ui.TextMessage{Text: acc.String()})
		}
	}

	if len(chunks) == 0 {
		return nil, fmt.Errorf("model stream: no output")
	}
	reply, err := schema.ConcatMessages(chunks)
	if err != nil {
		return nil, fmt.Errorf("concat model output: %w", err)
	}
	return reply, nil
}
