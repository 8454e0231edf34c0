package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/gorilla/websocket"

	"cryptochat/config"
)

type scriptedModel struct {
	chunks []*schema.Message
}

func (m *scriptedModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	return schema.ConcatMessages(m.chunks)
}

func (m *scriptedModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return schema.StreamReaderFromArray(m.chunks), nil
}

func (m *scriptedModel) WithTools(infos []*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	return m, nil
}

func newTestServer(t *testing.T, chunks []*schema.Message) *httptest.Server {
	t.Helper()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"symbol":"BTCUSDT","lastPrice":"69000","priceChange":"5"}`))
	}))
	t.Cleanup(upstream.Close)

	cfg := &config.Config{
		BinanceBaseURL:     upstream.URL,
		CMCBaseURL:         upstream.URL,
		QuoteCurrency:      "USDT",
		ToolLatencyFloorMs: 0,
	}
	srv := httptest.NewServer(New(cfg, &scriptedModel{chunks: chunks}).Router())
	t.Cleanup(srv.Close)
	return srv
}

func postChat(t *testing.T, srv *httptest.Server, sessionID, message string) (int, chatResponse) {
	t.Helper()

	body, _ := json.Marshal(chatRequest{Message: message})
	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/chat", bytes.NewReader(body))
	if sessionID != "" {
		req.Header.Set(sessionHeader, sessionID)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST /api/chat: %v", err)
	}
	defer resp.Body.Close()

	var out chatResponse
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestChatEndpointIssuesAndReusesSession(t *testing.T) {
	srv := newTestServer(t, []*schema.Message{schema.AssistantMessage("hello there", nil)})

	status, first := postChat(t, srv, "", "hi")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if first.SessionID == "" || first.Record == nil {
		t.Fatalf("expected session id and record, got %+v", first)
	}

	status, second := postChat(t, srv, first.SessionID, "hi again")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if second.SessionID != first.SessionID {
		t.Fatalf("session not reused: %s vs %s", first.SessionID, second.SessionID)
	}

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/feed", nil)
	req.Header.Set(sessionHeader, first.SessionID)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /api/feed: %v", err)
	}
	defer resp.Body.Close()

	var feed struct {
		SessionID string            `json:"session_id"`
		Records   []json.RawMessage `json:"records"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		t.Fatalf("decode feed: %v", err)
	}
	if len(feed.Records) != 4 {
		t.Fatalf("two turns must leave 4 display records, got %d", len(feed.Records))
	}
}

func TestChatEndpointRejectsEmptyMessage(t *testing.T) {
	srv := newTestServer(t, []*schema.Message{schema.AssistantMessage("unused", nil)})

	status, _ := postChat(t, srv, "", "   ")
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank message, got %d", status)
	}
}

func TestWebSocketStreamsPlaceholderThenFinal(t *testing.T) {
	toolCall := schema.AssistantMessage("", []schema.ToolCall{{
		ID:   "call_1",
		Type: "function",
		Function: schema.FunctionCall{
			Name:      "get_crypto_price",
			Arguments: `{"symbol":"BTC"}`,
		},
	}})
	srv := newTestServer(t, []*schema.Message{toolCall})

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var hello wsFrame
	if err := conn.ReadJSON(&hello); err != nil || hello.Event != "session" {
		t.Fatalf("expected session frame, got %+v err=%v", hello, err)
	}

	if err := conn.WriteJSON(chatRequest{Message: "price of BTC"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	kinds := []string{}
	for {
		var frame struct {
			Event string `json:"event"`
			Kind  string `json:"kind"`
			Error string `json:"error"`
		}
		if err := conn.ReadJSON(&frame); err != nil {
			t.Fatalf("read frame: %v", err)
		}
		if frame.Event == "error" {
			t.Fatalf("turn errored: %s", frame.Error)
		}
		if frame.Event == "final" {
			break
		}
		kinds = append(kinds, frame.Kind)
	}

	joined := strings.Join(kinds, ",")
	if !strings.Contains(joined, "spinner") || !strings.Contains(joined, "price_skeleton") {
		t.Fatalf("expected spinner and skeleton updates before final, got %q", joined)
	}
}
