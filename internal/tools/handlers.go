package tools

import (
	"context"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/shopspring/decimal"

	"github.com/abhiyaya/angelone-claud-mcp/internal/interfaces"
	"github.com/abhiyaya/angelone-claud-mcp/internal/logger"
	"github.com/abhiyaya/angelone-claud-mcp/internal/tradelog"
	"github.com/abhiyaya/angelone-claud-mcp/internal/types"
)

const candleTimeLayout = "2006-01-02 15:04"

func getPortfolioTool() mcp.Tool {
	return mcp.NewTool("get_portfolio",
		mcp.WithDescription("Retrieve the complete portfolio holdings for the authenticated user."),
	)
}

func (d Deps) handleGetPortfolio(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx, end := startToolSpan(ctx, "get_portfolio")
	defer end()

	return d.run(ctx, "get_portfolio", newRequestID(), func(ctx context.Context, t interfaces.Trader) (*types.Envelope, error) {
		return t.Holdings(ctx)
	})
}

func getCandleDataTool() mcp.Tool {
	return mcp.NewTool("get_candle_data",
		mcp.WithDescription("Retrieve historical OHLC candlestick data for a security over a time window."),
		mcp.WithString("start_time", mcp.Required(),
			mcp.Description("Start date and time, \"YYYY-MM-DD HH:MM\"")),
		mcp.WithString("end_time", mcp.Required(),
			mcp.Description("End date and time, \"YYYY-MM-DD HH:MM\"")),
		mcp.WithString("symboltoken",
			mcp.Description("Vendor symbol token of the security"),
			mcp.DefaultString("3045")),
		mcp.WithString("interval",
			mcp.Description("Candle interval"),
			mcp.DefaultString("ONE_MINUTE"),
			mcp.Enum("ONE_MINUTE", "THREE_MINUTE", "FIVE_MINUTE", "TEN_MINUTE",
				"FIFTEEN_MINUTE", "THIRTY_MINUTE", "ONE_HOUR", "ONE_DAY")),
	)
}

func (d Deps) handleGetCandleData(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx, end := startToolSpan(ctx, "get_candle_data")
	defer end()
	reqID := newRequestID()

	startTime, err := req.RequireString("start_time")
	if err != nil {
		return d.fail(ctx, "get_candle_data", reqID, &types.ValidationError{Field: "start_time", Reason: err.Error()})
	}
	endTime, err := req.RequireString("end_time")
	if err != nil {
		return d.fail(ctx, "get_candle_data", reqID, &types.ValidationError{Field: "end_time", Reason: err.Error()})
	}
	for field, v := range map[string]string{"start_time": startTime, "end_time": endTime} {
		if _, err := time.Parse(candleTimeLayout, v); err != nil {
			return d.fail(ctx, "get_candle_data", reqID, &types.ValidationError{Field: field, Reason: "expected \"YYYY-MM-DD HH:MM\""})
		}
	}

	interval := req.GetString("interval", "ONE_MINUTE")
	if !types.Intervals[interval] {
		return d.fail(ctx, "get_candle_data", reqID, &types.ValidationError{Field: "interval", Reason: "unknown interval " + interval})
	}

	q := types.CandleQuery{
		Exchange:    d.Config.Exchange,
		SymbolToken: req.GetString("symboltoken", d.Config.DefaultSymbolToken),
		Interval:    interval,
		FromDate:    startTime,
		ToDate:      endTime,
	}

	return d.run(ctx, "get_candle_data", reqID, func(ctx context.Context, t interfaces.Trader) (*types.Envelope, error) {
		return t.CandleData(ctx, q)
	})
}

func placeOrderTool() mcp.Tool {
	return mcp.NewTool("place_order",
		mcp.WithDescription("Place a new order on the exchange."),
		mcp.WithString("symbol", mcp.Required(),
			mcp.Description("Trading symbol of the security, e.g. \"SBIN-EQ\"")),
		mcp.WithString("symboltoken", mcp.Required(),
			mcp.Description("Vendor symbol token of the security")),
		mcp.WithString("transactiontype", mcp.Required(),
			mcp.Description("BUY or SELL"),
			mcp.Enum("BUY", "SELL")),
		mcp.WithNumber("quantity", mcp.Required(),
			mcp.Description("Number of shares to trade")),
		mcp.WithString("ordertype",
			mcp.Description("MARKET or LIMIT"),
			mcp.DefaultString("LIMIT")),
		mcp.WithString("producttype",
			mcp.Description("INTRADAY, DELIVERY or MARGIN"),
			mcp.DefaultString("DELIVERY")),
		mcp.WithNumber("price",
			mcp.Description("Limit price; required for LIMIT orders"),
			mcp.DefaultNumber(0)),
	)
}

func (d Deps) handlePlaceOrder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx, end := startToolSpan(ctx, "place_order")
	defer end()
	reqID := newRequestID()

	symbol, err := req.RequireString("symbol")
	if err != nil {
		return d.fail(ctx, "place_order", reqID, &types.ValidationError{Field: "symbol", Reason: err.Error()})
	}
	symbolToken, err := req.RequireString("symboltoken")
	if err != nil {
		return d.fail(ctx, "place_order", reqID, &types.ValidationError{Field: "symboltoken", Reason: err.Error()})
	}
	side, err := req.RequireString("transactiontype")
	if err != nil {
		return d.fail(ctx, "place_order", reqID, &types.ValidationError{Field: "transactiontype", Reason: err.Error()})
	}
	side = strings.ToUpper(side)
	if side != "BUY" && side != "SELL" {
		return d.fail(ctx, "place_order", reqID, &types.ValidationError{Field: "transactiontype", Reason: "must be BUY or SELL"})
	}
	qty, err := req.RequireInt("quantity")
	if err != nil {
		return d.fail(ctx, "place_order", reqID, &types.ValidationError{Field: "quantity", Reason: err.Error()})
	}
	if qty <= 0 {
		return d.fail(ctx, "place_order", reqID, &types.ValidationError{Field: "quantity", Reason: "must be positive"})
	}
	price := decimal.NewFromFloat(req.GetFloat("price", 0))
	if price.IsNegative() {
		return d.fail(ctx, "place_order", reqID, &types.ValidationError{Field: "price", Reason: "must not be negative"})
	}

	order := types.OrderRequest{
		Variety:         "NORMAL",
		Symbol:          symbol,
		SymbolToken:     symbolToken,
		TransactionType: side,
		Exchange:        d.Config.Exchange,
		OrderType:       req.GetString("ordertype", "LIMIT"),
		ProductType:     req.GetString("producttype", "DELIVERY"),
		Quantity:        qty,
		Price:           price,
	}

	var env *types.Envelope
	res, rerr := d.run(ctx, "place_order", reqID, func(ctx context.Context, t interfaces.Trader) (*types.Envelope, error) {
		e, err := t.PlaceOrder(ctx, order)
		env = e
		return e, err
	})

	if env != nil {
		if err := tradelog.Append(tradelog.Entry{
			Tool:            "place_order",
			RequestID:       reqID,
			Symbol:          order.Symbol,
			TransactionType: order.TransactionType,
			Qty:             order.Quantity,
			Price:           order.Price.String(),
			OrderID:         orderIDFrom(env),
			Variety:         order.Variety,
			Outcome:         "ok",
		}); err != nil {
			logger.Warn(ctx, "Failed to append trade log", "error", err)
		}
	}

	return res, rerr
}

func cancelOrderTool() mcp.Tool {
	return mcp.NewTool("cancel_order",
		mcp.WithDescription("Cancel an existing pending order by id."),
		mcp.WithString("order_id", mcp.Required(),
			mcp.Description("Unique identifier of the order to cancel")),
		mcp.WithString("variety",
			mcp.Description("Order variety: NORMAL, AMO or STOPLOSS"),
			mcp.DefaultString("NORMAL")),
	)
}

func (d Deps) handleCancelOrder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx, end := startToolSpan(ctx, "cancel_order")
	defer end()
	reqID := newRequestID()

	orderID, err := req.RequireString("order_id")
	if err != nil {
		return d.fail(ctx, "cancel_order", reqID, &types.ValidationError{Field: "order_id", Reason: err.Error()})
	}
	variety := req.GetString("variety", "NORMAL")

	var env *types.Envelope
	res, rerr := d.run(ctx, "cancel_order", reqID, func(ctx context.Context, t interfaces.Trader) (*types.Envelope, error) {
		e, err := t.CancelOrder(ctx, orderID, variety)
		env = e
		return e, err
	})

	if env != nil {
		if err := tradelog.Append(tradelog.Entry{
			Tool:      "cancel_order",
			RequestID: reqID,
			OrderID:   orderID,
			Variety:   variety,
			Outcome:   "ok",
		}); err != nil {
			logger.Warn(ctx, "Failed to append trade log", "error", err)
		}
	}

	return res, rerr
}

func getOrderBookTool() mcp.Tool {
	return mcp.NewTool("get_order_book",
		mcp.WithDescription("Retrieve all orders for the authenticated user: pending, executed and cancelled."),
	)
}

func (d Deps) handleGetOrderBook(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx, end := startToolSpan(ctx, "get_order_book")
	defer end()

	return d.run(ctx, "get_order_book", newRequestID(), func(ctx context.Context, t interfaces.Trader) (*types.Envelope, error) {
		return t.OrderBook(ctx)
	})
}
