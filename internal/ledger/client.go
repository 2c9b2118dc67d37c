// Package ledger reads registered websites and their click records from the
// node's JSON-RPC interface over a websocket.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/dinerozz/datahive-backend/internal/entity"
	"github.com/dinerozz/datahive-backend/internal/shared"
	"github.com/gorilla/websocket"
)

const (
	collaborator   = "ledger"
	maxMessageSize = 16 << 20
)

type Config struct {
	URL               string
	Timeout           time.Duration
	WebsitesMethod    string
	WebsiteDataMethod string
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

type rpcResponse struct {
	ID     *uint64         `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

// Client is safe for concurrent use. Calls are serialized over a single
// connection that is dialled on first use and dropped after any transport error.
type Client struct {
	cfg    Config
	dialer *websocket.Dialer
	logger *slog.Logger

	mu     sync.Mutex
	conn   *websocket.Conn
	nextID uint64
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		cfg:    cfg,
		dialer: websocket.DefaultDialer,
		logger: logger.With("component", "ledger"),
	}
}

// Connect dials the node eagerly so that a misconfigured URL shows up at startup.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.ensureConn(ctx); err != nil {
		return shared.NewUpstreamError(collaborator, "connect", err)
	}
	return nil
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

func (c *Client) ListWebsites(ctx context.Context) ([]string, error) {
	raw, err := c.call(ctx, c.cfg.WebsitesMethod)
	if err != nil {
		return nil, shared.NewUpstreamError(collaborator, "list websites", err)
	}
	if isNull(raw) {
		return []string{}, nil
	}
	ids, err := parseWebsiteIDs(raw)
	if err != nil {
		return nil, shared.NewUpstreamError(collaborator, "list websites", err)
	}
	return ids, nil
}

func (c *Client) FetchWebsiteDataset(ctx context.Context, websiteID string) (entity.WebsiteDataset, error) {
	op := "fetch website " + websiteID
	raw, err := c.call(ctx, c.cfg.WebsiteDataMethod, websiteParam(websiteID))
	if err != nil {
		return entity.WebsiteDataset{}, shared.NewUpstreamError(collaborator, op, err)
	}
	if isNull(raw) {
		return entity.WebsiteDataset{}, fmt.Errorf("website %s: %w", websiteID, shared.ErrWebsiteNotFound)
	}

	ds, err := ParseWebsiteDataset(websiteID, raw)
	if err != nil {
		return entity.WebsiteDataset{}, shared.NewUpstreamError(collaborator, op, err)
	}

	c.logger.Debug("fetched website dataset",
		slog.String("website_id", websiteID),
		slog.Int("sessions", len(ds.Sessions)),
		slog.Int("records", ds.RecordCount()))
	return ds, nil
}

func (c *Client) call(ctx context.Context, method string, params ...any) (json.RawMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	conn, err := c.ensureConn(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := c.roundTrip(ctx, conn, method, params)
	if err != nil {
		var rpcErr *rpcError
		if !errors.As(err, &rpcErr) {
			c.dropConn()
		}
		return nil, err
	}
	return raw, nil
}

func (c *Client) roundTrip(ctx context.Context, conn *websocket.Conn, method string, params []any) (json.RawMessage, error) {
	deadline, _ := ctx.Deadline()
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetReadDeadline(time.Now())
	})
	defer stop()

	c.nextID++
	id := c.nextID
	if params == nil {
		params = []any{}
	}

	_ = conn.SetWriteDeadline(deadline)
	if err := conn.WriteJSON(rpcRequest{JSONRPC: "2.0", ID: id, Method: method, Params: params}); err != nil {
		return nil, fmt.Errorf("write %s: %w", method, err)
	}

	_ = conn.SetReadDeadline(deadline)
	for {
		var resp rpcResponse
		if err := conn.ReadJSON(&resp); err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("read %s: %w", method, ctx.Err())
			}
			return nil, fmt.Errorf("read %s: %w", method, err)
		}
		if resp.ID == nil || *resp.ID != id {
			// subscription notifications and stale replies
			continue
		}
		if resp.Error != nil {
			return nil, resp.Error
		}
		return resp.Result, nil
	}
}

func (c *Client) ensureConn(ctx context.Context) (*websocket.Conn, error) {
	if c.conn != nil {
		return c.conn, nil
	}
	conn, _, err := c.dialer.DialContext(ctx, c.cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", c.cfg.URL, err)
	}
	conn.SetReadLimit(maxMessageSize)
	c.conn = conn
	c.logger.Info("connected to ledger node", slog.String("url", c.cfg.URL))
	return conn, nil
}

func (c *Client) dropConn() {
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
}

// websiteParam sends numeric ids as numbers, matching the node's u32 key.
func websiteParam(websiteID string) any {
	if n, err := strconv.ParseUint(websiteID, 10, 32); err == nil {
		return n
	}
	return websiteID
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
