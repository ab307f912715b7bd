// Package tools registers the trading operations as MCP tools. Every
// handler follows the same shape: validate parameters, acquire the
// session, issue one vendor call, and always return a well-formed tool
// result — errors become error results, never protocol faults.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abhiyaya/angelone-claud-mcp/internal/interfaces"
	"github.com/abhiyaya/angelone-claud-mcp/internal/logger"
	"github.com/abhiyaya/angelone-claud-mcp/internal/metrics"
	"github.com/abhiyaya/angelone-claud-mcp/internal/session"
	"github.com/abhiyaya/angelone-claud-mcp/internal/store"
	"github.com/abhiyaya/angelone-claud-mcp/internal/trace"
	"github.com/abhiyaya/angelone-claud-mcp/internal/types"
)

type Deps struct {
	Session *session.Manager
	Config  *store.Config
}

// Register adds all trading tools and the greeting resource to the server.
func Register(s *server.MCPServer, d Deps) {
	s.AddTool(getPortfolioTool(), d.handleGetPortfolio)
	s.AddTool(getCandleDataTool(), d.handleGetCandleData)
	s.AddTool(placeOrderTool(), d.handlePlaceOrder)
	s.AddTool(cancelOrderTool(), d.handleCancelOrder)
	s.AddTool(getOrderBookTool(), d.handleGetOrderBook)
	registerGreeting(s)
}

// run acquires the session, issues the vendor call, and renders the
// envelope as the tool result. A token-expiry rejection invalidates the
// cached session so the next invocation re-logins; the failed call
// itself is surfaced as an error result.
func (d Deps) run(ctx context.Context, tool, reqID string, call func(context.Context, interfaces.Trader) (*types.Envelope, error)) (*mcp.CallToolResult, error) {
	trader, err := d.Session.Acquire(ctx)
	if err != nil {
		return d.fail(ctx, tool, reqID, err)
	}

	env, err := call(ctx, trader)
	if err != nil {
		var apiErr *types.APIError
		if errors.As(err, &apiErr) && apiErr.TokenExpired() {
			logger.Warn(ctx, "Session token expired, re-login on next call", "tool", tool, "request_id", reqID)
			d.Session.Invalidate()
		}
		return d.fail(ctx, tool, reqID, err)
	}

	b, err := json.Marshal(env)
	if err != nil {
		return d.fail(ctx, tool, reqID, fmt.Errorf("encode response: %w", err))
	}

	metrics.ToolCall(tool, nil)
	logger.Info(ctx, "Tool completed", "tool", tool, "request_id", reqID)
	return mcp.NewToolResultText(string(b)), nil
}

func (d Deps) fail(ctx context.Context, tool, reqID string, err error) (*mcp.CallToolResult, error) {
	metrics.ToolCall(tool, err)
	logger.ErrorWithErr(ctx, "Tool failed", err, "tool", tool, "request_id", reqID)
	return mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", tool, err)), nil
}

func newRequestID() string {
	return uuid.NewString()
}

func startToolSpan(ctx context.Context, tool string) (context.Context, func()) {
	ctx, span := trace.StartSpan(ctx, "tools."+tool)
	return ctx, func() { span.End() }
}

// orderIDFrom pulls the vendor order id out of a place/cancel response
// for the audit log; absent ids are logged as empty.
func orderIDFrom(env *types.Envelope) string {
	if env == nil || len(env.Data) == 0 {
		return ""
	}
	var data struct {
		OrderID string `json:"orderid"`
	}
	_ = json.Unmarshal(env.Data, &data)
	return data.OrderID
}
