package ui

import (
	"encoding/json"
	"sync"
	"time"

	"cryptochat/internal/chat"
)

// ToolInvocation records a pending tool call attached to an in-flight
// display record.
type ToolInvocation struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// DisplayRecord is one presentation-facing transcript entry. It is distinct
// from chat.Message: the renderable may be a rich card, while history holds
// only text.
type DisplayRecord struct {
	ID               int64
	Role             chat.Role
	Renderable       Renderable
	PendingToolCalls []ToolInvocation
}

// MarshalJSON flattens the renderable behind a kind tag so consumers can
// dispatch without reflection.
func (r DisplayRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID               int64            `json:"id"`
		Role             chat.Role        `json:"role"`
		Kind             string           `json:"kind"`
		Renderable       Renderable       `json:"renderable"`
		PendingToolCalls []ToolInvocation `json:"pending_tool_calls,omitempty"`
	}{
		ID:               r.ID,
		Role:             r.Role,
		Kind:             r.Renderable.Kind(),
		Renderable:       r.Renderable,
		PendingToolCalls: r.PendingToolCalls,
	})
}

// Feed is the ordered display transcript for one session. It is seeded
// empty and appended to per completed turn; it is never re-derived from
// the conversation history.
type Feed struct {
	mu      sync.Mutex
	lastID  int64
	records []DisplayRecord
}

func NewFeed() *Feed {
	return &Feed{}
}

// nextIDLocked returns a fresh monotonic record id, seeded from wall-clock
// milliseconds so ids double as creation timestamps.
func (f *Feed) nextIDLocked() int64 {
	id := time.Now().UnixMilli()
	if id <= f.lastID {
		id = f.lastID + 1
	}
	f.lastID = id
	return id
}

// Append adds one record in arrival order and returns it with an id
// assigned if the caller left it zero.
func (f *Feed) Append(rec DisplayRecord) DisplayRecord {
	f.mu.Lock()
	defer f.mu.Unlock()

	if rec.ID == 0 {
		rec.ID = f.nextIDLocked()
	} else if rec.ID > f.lastID {
		f.lastID = rec.ID
	}
	f.records = append(f.records, rec)
	return rec
}

func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

// Records returns a snapshot of the feed in arrival order.
func (f *Feed) Records() []DisplayRecord {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]DisplayRecord, len(f.records))
	copy(out, f.records)
	return out
}
