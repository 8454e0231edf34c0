package ui

import (
	"encoding/json"
	"strings"
	"testing"

	"cryptochat/internal/chat"
)

func TestFeedIDsAreMonotonic(t *testing.T) {
	f := NewFeed()

	var prev int64
	for i := 0; i < 100; i++ {
		rec := f.Append(DisplayRecord{Role: chat.RoleAssistant, Renderable: Spinner{}})
		if rec.ID <= prev {
			t.Fatalf("id %d not greater than previous %d", rec.ID, prev)
		}
		prev = rec.ID
	}
}

func TestFeedAppendsInArrivalOrder(t *testing.T) {
	f := NewFeed()

	user := f.Append(DisplayRecord{Role: chat.RoleUser, Renderable: TextMessage{Text: "price of BTC"}})
	bot := f.Append(DisplayRecord{Role: chat.RoleAssistant, Renderable: Spinner{}})

	if f.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", f.Len())
	}
	recs := f.Records()
	if recs[0].ID != user.ID || recs[1].ID != bot.ID {
		t.Fatalf("records out of arrival order")
	}
	if bot.ID <= user.ID {
		t.Fatalf("assigned ids must stay monotonic: %d then %d", user.ID, bot.ID)
	}
}

func TestDisplayRecordJSONCarriesKind(t *testing.T) {
	rec := DisplayRecord{
		ID:         42,
		Role:       chat.RoleAssistant,
		Renderable: NotFoundCard{Slug: "ghostcoin"},
	}

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, `"kind":"not_found_card"`) {
		t.Fatalf("kind tag missing: %s", s)
	}
	if !strings.Contains(s, `"ghostcoin"`) {
		t.Fatalf("payload missing: %s", s)
	}
}

func TestUserRecordJSONIsRoleNeutral(t *testing.T) {
	rec := DisplayRecord{
		ID:         7,
		Role:       chat.RoleUser,
		Renderable: TextMessage{Text: "price of BTC"},
	}

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, `"kind":"text"`) {
		t.Fatalf("user bubble must carry the neutral text kind: %s", s)
	}
	if strings.Contains(s, "bot") {
		t.Fatalf("user bubble tagged as bot output: %s", s)
	}
}
