package interfaces

import (
	"context"

	"github.com/abhiyaya/angelone-claud-mcp/internal/types"
)

// Trader is the authenticated vendor surface the tools dispatch to.
// Every method maps 1:1 to one SmartAPI REST call.
type Trader interface {
	Holdings(ctx context.Context) (*types.Envelope, error)
	CandleData(ctx context.Context, q types.CandleQuery) (*types.Envelope, error)
	PlaceOrder(ctx context.Context, req types.OrderRequest) (*types.Envelope, error)
	CancelOrder(ctx context.Context, orderID, variety string) (*types.Envelope, error)
	OrderBook(ctx context.Context) (*types.Envelope, error)
}

// CodeSource produces the current TOTP code from the configured seed.
// Kept as a one-method interface so tests can use a deterministic stub.
type CodeSource interface {
	Now() (string, error)
}
