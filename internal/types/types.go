package types

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Envelope is the response shape every SmartAPI endpoint returns.
// Data is kept raw so tool callers receive the vendor payload unchanged.
type Envelope struct {
	Status    bool            `json:"status"`
	Message   string          `json:"message"`
	ErrorCode string          `json:"errorcode"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// SessionTokens are the credentials issued by a successful login.
// The feed token authorizes market-data streaming and is carried but
// not used by any REST operation here.
type SessionTokens struct {
	JWTToken     string `json:"jwtToken"`
	RefreshToken string `json:"refreshToken"`
	FeedToken    string `json:"feedToken"`
}

// OrderRequest describes a new order. Combination correctness
// (e.g. LIMIT with price 0) is delegated to the vendor.
type OrderRequest struct {
	Variety         string
	Symbol          string
	SymbolToken     string
	TransactionType string
	Exchange        string
	OrderType       string
	ProductType     string
	Quantity        int
	Price           decimal.Decimal
}

// CandleQuery selects a historical OHLC window.
type CandleQuery struct {
	Exchange    string
	SymbolToken string
	Interval    string
	FromDate    string // "2006-01-02 15:04"
	ToDate      string
}

// Intervals accepted by the historical candle endpoint.
var Intervals = map[string]bool{
	"ONE_MINUTE":     true,
	"THREE_MINUTE":   true,
	"FIVE_MINUTE":    true,
	"TEN_MINUTE":     true,
	"FIFTEEN_MINUTE": true,
	"THIRTY_MINUTE":  true,
	"ONE_HOUR":       true,
	"ONE_DAY":        true,
}
