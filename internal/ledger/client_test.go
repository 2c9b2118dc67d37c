package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dinerozz/datahive-backend/internal/shared"
	"github.com/gorilla/websocket"
)

const checkoutBase64 = "U2FsdGVkX18DzhlBdIlrccsUCijGWHCUCqVjgLbGz3g="

type fakeNode struct {
	handle func(req rpcRequest) (result any, rpcErr *rpcError, reply bool)
	conns  atomic.Int32
}

func (n *fakeNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{}
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer ws.Close()
	n.conns.Add(1)

	for {
		var req rpcRequest
		if err := ws.ReadJSON(&req); err != nil {
			return
		}
		result, rpcErr, reply := n.handle(req)
		if !reply {
			continue
		}
		// a notification first, which the client must skip
		_ = ws.WriteJSON(map[string]any{"jsonrpc": "2.0", "method": "chain_newHead", "params": map[string]any{}})
		resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
		if rpcErr != nil {
			resp["error"] = rpcErr
		} else {
			resp["result"] = result
		}
		if err := ws.WriteJSON(resp); err != nil {
			return
		}
	}
}

func newTestClient(t *testing.T, node *fakeNode) *Client {
	t.Helper()
	server := httptest.NewServer(node)
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := NewClient(Config{
		URL:               "ws" + strings.TrimPrefix(server.URL, "http"),
		Timeout:           2 * time.Second,
		WebsitesMethod:    "dbModule_websites",
		WebsiteDataMethod: "dbModule_websiteData",
	}, logger)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestClient_ListWebsites(t *testing.T) {
	node := &fakeNode{handle: func(req rpcRequest) (any, *rpcError, bool) {
		if req.Method != "dbModule_websites" {
			return nil, &rpcError{Code: -32601, Message: "method not found"}, true
		}
		return []any{7, "shop-eu", 12}, nil, true
	}}
	client := newTestClient(t, node)

	ids, err := client.ListWebsites(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Join(ids, ",") != "7,shop-eu,12" {
		t.Errorf("got %v", ids)
	}
}

func TestClient_FetchWebsiteDataset(t *testing.T) {
	var gotParams []any
	node := &fakeNode{handle: func(req rpcRequest) (any, *rpcError, bool) {
		gotParams = req.Params
		payload := `{
			"zeta": {"clicks": [{"domId": "` + checkoutBase64 + `"}]},
			"alpha": {"clicks": [{"domId": [1, 2, 255]}, {"domId": "0x0a0b"}]},
			"empty": {"clicks": []}
		}`
		return json.RawMessage(payload), nil, true
	}}
	client := newTestClient(t, node)

	ds, err := client.FetchWebsiteDataset(context.Background(), "42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(gotParams) != 1 || gotParams[0] != float64(42) {
		t.Errorf("website id should be sent as a number, got %#v", gotParams)
	}
	if ds.WebsiteID != "42" {
		t.Errorf("got website id %q", ds.WebsiteID)
	}

	keys := make([]string, len(ds.Sessions))
	for i, s := range ds.Sessions {
		keys[i] = s.Key
	}
	if strings.Join(keys, ",") != "zeta,alpha,empty" {
		t.Errorf("session order not preserved: %v", keys)
	}
	if ds.RecordCount() != 3 {
		t.Errorf("got %d records, want 3", ds.RecordCount())
	}
	if got := ds.Sessions[1].Records[0].ObfuscatedLabel; string(got) != "\x01\x02\xff" {
		t.Errorf("array encoding decoded to %v", got)
	}
	if got := ds.Sessions[1].Records[1].ObfuscatedLabel; string(got) != "\x0a\x0b" {
		t.Errorf("hex encoding decoded to %v", got)
	}
	if !strings.HasPrefix(string(ds.Sessions[0].Records[0].ObfuscatedLabel), "Salted__") {
		t.Error("base64 encoding should decode to the salted blob")
	}
	if ds.Sessions[1].Records[0].SessionKey != "alpha" {
		t.Errorf("record session key not set: %q", ds.Sessions[1].Records[0].SessionKey)
	}
}

func TestClient_FetchUnknownWebsite(t *testing.T) {
	node := &fakeNode{handle: func(req rpcRequest) (any, *rpcError, bool) {
		return nil, nil, true
	}}
	client := newTestClient(t, node)

	_, err := client.FetchWebsiteDataset(context.Background(), "99")
	if !errors.Is(err, shared.ErrWebsiteNotFound) {
		t.Fatalf("expected ErrWebsiteNotFound, got %v", err)
	}
	if errors.Is(err, shared.ErrUpstreamFetch) {
		t.Error("a missing website is not an upstream failure")
	}
}

func TestClient_RPCErrorIsUpstreamFailure(t *testing.T) {
	node := &fakeNode{handle: func(req rpcRequest) (any, *rpcError, bool) {
		return nil, &rpcError{Code: -32000, Message: "storage unavailable"}, true
	}}
	client := newTestClient(t, node)

	_, err := client.FetchWebsiteDataset(context.Background(), "1")
	if !errors.Is(err, shared.ErrUpstreamFetch) {
		t.Fatalf("expected ErrUpstreamFetch, got %v", err)
	}
	if !strings.Contains(err.Error(), "storage unavailable") {
		t.Errorf("error should carry the rpc message: %v", err)
	}

	// rpc errors keep the connection
	_, _ = client.ListWebsites(context.Background())
	if node.conns.Load() != 1 {
		t.Errorf("expected a single connection, got %d", node.conns.Load())
	}
}

func TestClient_MalformedPayload(t *testing.T) {
	node := &fakeNode{handle: func(req rpcRequest) (any, *rpcError, bool) {
		return json.RawMessage(`{"a": {"clicks": []}, "a": {"clicks": []}}`), nil, true
	}}
	client := newTestClient(t, node)

	_, err := client.FetchWebsiteDataset(context.Background(), "1")
	if !errors.Is(err, shared.ErrUpstreamFetch) || !errors.Is(err, ErrMalformedPayload) {
		t.Fatalf("expected malformed upstream failure, got %v", err)
	}
}

func TestClient_TimeoutReconnects(t *testing.T) {
	var calls atomic.Int32
	node := &fakeNode{handle: func(req rpcRequest) (any, *rpcError, bool) {
		if calls.Add(1) == 1 {
			return nil, nil, false
		}
		return []any{1}, nil, true
	}}
	client := newTestClient(t, node)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err := client.ListWebsites(ctx)
	if !errors.Is(err, shared.ErrUpstreamFetch) {
		t.Fatalf("expected ErrUpstreamFetch on timeout, got %v", err)
	}

	ids, err := client.ListWebsites(context.Background())
	if err != nil {
		t.Fatalf("client should redial after a timeout: %v", err)
	}
	if len(ids) != 1 || ids[0] != "1" {
		t.Errorf("got %v", ids)
	}
	if node.conns.Load() != 2 {
		t.Errorf("expected 2 connections, got %d", node.conns.Load())
	}
}

func TestClient_DialFailure(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := NewClient(Config{URL: "ws://127.0.0.1:1", Timeout: time.Second}, logger)

	if err := client.Connect(context.Background()); !errors.Is(err, shared.ErrUpstreamFetch) {
		t.Fatalf("expected ErrUpstreamFetch, got %v", err)
	}
}
