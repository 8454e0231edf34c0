package chat

import (
	"sync"

	"github.com/cloudwego/eino/schema"
)

// History is the canonical, append-only conversation state for one session.
// Appends are serialized through the mutex; a message is never mutated after
// it has been appended.
type History struct {
	mu      sync.Mutex
	nextSeq int64
	msgs    []Message
}

func NewHistory() *History {
	return &History{nextSeq: 1}
}

// Append commits one finalized message and returns it with its sequence
// number assigned.
func (h *History) Append(msg Message) Message {
	h.mu.Lock()
	defer h.mu.Unlock()

	msg.Seq = h.nextSeq
	h.nextSeq++
	h.msgs = append(h.msgs, msg)
	return msg
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.msgs)
}

// Messages returns a snapshot of the history in insertion order.
func (h *History) Messages() []Message {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Message, len(h.msgs))
	copy(out, h.msgs)
	return out
}

// ModelMessages projects the history into the model's wire shape, with the
// system prompt first. When window > 0 only the most recent window messages
// are replayed; the system prompt is always retained.
func (h *History) ModelMessages(systemPrompt string, window int) []*schema.Message {
	msgs := h.Messages()
	if window > 0 && len(msgs) > window {
		msgs = msgs[len(msgs)-window:]
	}

	out := make([]*schema.Message, 0, len(msgs)+1)
	out = append(out, schema.SystemMessage(systemPrompt))
	for _, m := range msgs {
		switch m.Role {
		case RoleUser:
			out = append(out, schema.UserMessage(m.Content))
		case RoleSystem:
			out = append(out, schema.SystemMessage(m.Content))
		case RoleAssistant:
			out = append(out, schema.AssistantMessage(m.Content, nil))
		}
	}
	return out
}
