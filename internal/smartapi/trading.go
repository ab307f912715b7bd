package smartapi

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/abhiyaya/angelone-claud-mcp/internal/types"
)

// Holdings fetches the portfolio for the logged-in account.
func (c *Client) Holdings(ctx context.Context) (*types.Envelope, error) {
	return c.get(ctx, "holdings", holdingPath)
}

// CandleData fetches historical OHLC bars for the query window.
func (c *Client) CandleData(ctx context.Context, q types.CandleQuery) (*types.Envelope, error) {
	return c.post(ctx, "candle_data", candleDataPath, map[string]string{
		"exchange":    q.Exchange,
		"symboltoken": q.SymbolToken,
		"interval":    q.Interval,
		"fromdate":    q.FromDate,
		"todate":      q.ToDate,
	})
}

// PlaceOrder submits a new order. squareoff/stoploss are fixed to "0";
// bracket parameters are not part of this surface.
func (c *Client) PlaceOrder(ctx context.Context, req types.OrderRequest) (*types.Envelope, error) {
	return c.post(ctx, "place_order", placeOrderPath, map[string]string{
		"variety":         req.Variety,
		"tradingsymbol":   req.Symbol,
		"symboltoken":     req.SymbolToken,
		"transactiontype": req.TransactionType,
		"exchange":        req.Exchange,
		"ordertype":       req.OrderType,
		"producttype":     req.ProductType,
		"duration":        "DAY",
		"price":           req.Price.String(),
		"squareoff":       "0",
		"stoploss":        "0",
		"quantity":        strconv.Itoa(req.Quantity),
	})
}

// CancelOrder cancels a pending order by id.
func (c *Client) CancelOrder(ctx context.Context, orderID, variety string) (*types.Envelope, error) {
	return c.post(ctx, "cancel_order", cancelOrderPath, map[string]string{
		"variety": variety,
		"orderid": orderID,
	})
}

// OrderBook fetches all orders for the day, regardless of state.
func (c *Client) OrderBook(ctx context.Context) (*types.Envelope, error) {
	return c.get(ctx, "order_book", orderBookPath)
}

func unmarshalData(env *types.Envelope, out any) error {
	if len(env.Data) == 0 {
		return json.Unmarshal([]byte("{}"), out)
	}
	return json.Unmarshal(env.Data, out)
}
