// Package sessionobs wraps the authenticated trader with logging,
// tracing and metrics around every vendor call.
package sessionobs

import (
	"context"
	"time"

	"github.com/abhiyaya/angelone-claud-mcp/internal/interfaces"
	"github.com/abhiyaya/angelone-claud-mcp/internal/logger"
	"github.com/abhiyaya/angelone-claud-mcp/internal/metrics"
	"github.com/abhiyaya/angelone-claud-mcp/internal/trace"
	"github.com/abhiyaya/angelone-claud-mcp/internal/types"
)

type observableTrader struct {
	trader interfaces.Trader
}

var _ interfaces.Trader = (*observableTrader)(nil)

// Wrap wraps a trader with observability middleware
func Wrap(trader interfaces.Trader) interfaces.Trader {
	return &observableTrader{trader: trader}
}

func (ot *observableTrader) observe(ctx context.Context, op string, fields []any, call func(ctx context.Context) (*types.Envelope, error)) (*types.Envelope, error) {
	ctx, span := trace.StartSpan(ctx, "smartapi."+op)
	defer span.End()

	logger.Debug(ctx, "Vendor call started", append([]any{"op", op}, fields...)...)

	start := time.Now()
	env, err := call(ctx)
	metrics.VendorCall(op, time.Since(start), err)

	if err != nil {
		logger.ErrorWithErr(ctx, "Vendor call failed", err, append([]any{"op", op}, fields...)...)
		return nil, err
	}

	logger.Debug(ctx, "Vendor call completed", "op", op, "message", env.Message)
	return env, nil
}

func (ot *observableTrader) Holdings(ctx context.Context) (*types.Envelope, error) {
	return ot.observe(ctx, "holdings", nil, ot.trader.Holdings)
}

func (ot *observableTrader) CandleData(ctx context.Context, q types.CandleQuery) (*types.Envelope, error) {
	fields := []any{"symboltoken", q.SymbolToken, "interval", q.Interval}
	return ot.observe(ctx, "candle_data", fields, func(ctx context.Context) (*types.Envelope, error) {
		return ot.trader.CandleData(ctx, q)
	})
}

func (ot *observableTrader) PlaceOrder(ctx context.Context, req types.OrderRequest) (*types.Envelope, error) {
	fields := []any{
		"symbol", req.Symbol,
		"side", req.TransactionType,
		"qty", req.Quantity,
		"ordertype", req.OrderType,
	}
	return ot.observe(ctx, "place_order", fields, func(ctx context.Context) (*types.Envelope, error) {
		return ot.trader.PlaceOrder(ctx, req)
	})
}

func (ot *observableTrader) CancelOrder(ctx context.Context, orderID, variety string) (*types.Envelope, error) {
	fields := []any{"order_id", orderID, "variety", variety}
	return ot.observe(ctx, "cancel_order", fields, func(ctx context.Context) (*types.Envelope, error) {
		return ot.trader.CancelOrder(ctx, orderID, variety)
	})
}

func (ot *observableTrader) OrderBook(ctx context.Context) (*types.Envelope, error) {
	return ot.observe(ctx, "order_book", nil, ot.trader.OrderBook)
}
