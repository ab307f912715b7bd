// Package smartapi is an HTTP client for the AngelOne SmartAPI REST
// surface. It covers login/logout plus the trading endpoints the tool
// layer dispatches to; the contract of each endpoint is owned by the
// vendor.
package smartapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/abhiyaya/angelone-claud-mcp/internal/interfaces"
	"github.com/abhiyaya/angelone-claud-mcp/internal/types"
)

const (
	loginPath       = "/rest/auth/angelbroking/user/v1/loginByPassword"
	logoutPath      = "/rest/secure/angelbroking/user/v1/logout"
	holdingPath     = "/rest/secure/angelbroking/portfolio/v1/getHolding"
	candleDataPath  = "/rest/secure/angelbroking/historical/v1/getCandleData"
	placeOrderPath  = "/rest/secure/angelbroking/order/v1/placeOrder"
	cancelOrderPath = "/rest/secure/angelbroking/order/v1/cancelOrder"
	orderBookPath   = "/rest/secure/angelbroking/order/v1/getOrderBook"
)

type Config struct {
	BaseURL    string
	APIKey     string
	ClientCode string
	Password   string
	Codes      interfaces.CodeSource
	Timeout    time.Duration
}

type Client struct {
	http *resty.Client
	cfg  Config

	mu     sync.RWMutex
	tokens types.SessionTokens
}

var _ interfaces.Trader = (*Client)(nil)

func New(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	http := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("X-UserType", "USER").
		SetHeader("X-SourceID", "WEB").
		SetHeader("X-ClientLocalIP", localIP()).
		SetHeader("X-ClientPublicIP", localIP()).
		SetHeader("X-MACAddress", macAddress()).
		SetHeader("X-PrivateKey", cfg.APIKey)

	return &Client{http: http, cfg: cfg}
}

// Login authenticates with password plus the current TOTP code and
// stores the issued tokens on the client for subsequent calls.
func (c *Client) Login(ctx context.Context) (types.SessionTokens, error) {
	code, err := c.cfg.Codes.Now()
	if err != nil {
		return types.SessionTokens{}, fmt.Errorf("totp generation: %w", err)
	}

	env, err := c.post(ctx, "login", loginPath, map[string]string{
		"clientcode": c.cfg.ClientCode,
		"password":   c.cfg.Password,
		"totp":       code,
	})
	if err != nil {
		return types.SessionTokens{}, err
	}

	var tokens types.SessionTokens
	if err := unmarshalData(env, &tokens); err != nil {
		return types.SessionTokens{}, fmt.Errorf("login response: %w", err)
	}
	if tokens.JWTToken == "" {
		return types.SessionTokens{}, &types.APIError{Op: "login", Message: "no session token in response"}
	}

	c.mu.Lock()
	c.tokens = tokens
	c.mu.Unlock()
	return tokens, nil
}

// Logout invalidates the vendor session. Best effort on shutdown.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.post(ctx, "logout", logoutPath, map[string]string{
		"clientcode": c.cfg.ClientCode,
	})
	if err == nil {
		c.mu.Lock()
		c.tokens = types.SessionTokens{}
		c.mu.Unlock()
	}
	return err
}

// FeedToken returns the streaming token from the last login, if any.
func (c *Client) FeedToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tokens.FeedToken
}

func (c *Client) authHeader() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.tokens.JWTToken == "" {
		return ""
	}
	return "Bearer " + c.tokens.JWTToken
}

func (c *Client) newRequest(ctx context.Context) *resty.Request {
	r := c.http.R().SetContext(ctx)
	if auth := c.authHeader(); auth != "" {
		r.SetHeader("Authorization", auth)
	}
	return r
}

func (c *Client) get(ctx context.Context, op, path string) (*types.Envelope, error) {
	var env types.Envelope
	resp, err := c.newRequest(ctx).SetResult(&env).Get(path)
	return checkResponse(op, &env, resp, err)
}

func (c *Client) post(ctx context.Context, op, path string, body any) (*types.Envelope, error) {
	var env types.Envelope
	resp, err := c.newRequest(ctx).SetBody(body).SetResult(&env).Post(path)
	return checkResponse(op, &env, resp, err)
}

// checkResponse folds transport errors, non-2xx statuses and
// status=false envelopes into a single error path.
func checkResponse(op string, env *types.Envelope, resp *resty.Response, err error) (*types.Envelope, error) {
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if resp.IsError() {
		// resty leaves the result target untouched on non-2xx, but the
		// vendor still sends its envelope on auth rejections.
		_ = json.Unmarshal(resp.Body(), env)
		return nil, &types.APIError{
			Op:        op,
			ErrorCode: env.ErrorCode,
			Message:   fmt.Sprintf("http %d: %s", resp.StatusCode(), firstNonEmpty(env.Message, resp.Status())),
		}
	}
	if !env.Status {
		return nil, &types.APIError{Op: op, ErrorCode: env.ErrorCode, Message: firstNonEmpty(env.Message, "request rejected")}
	}
	return env, nil
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// localIP finds a non-loopback IPv4 for the client headers the vendor
// expects on every request.
func localIP() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "127.0.0.1"
	}
	for _, addr := range addrs {
		if ipnet, ok := addr.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
			if ip4 := ipnet.IP.To4(); ip4 != nil {
				return ip4.String()
			}
		}
	}
	return "127.0.0.1"
}

func macAddress() string {
	ifaces, err := net.Interfaces()
	if err != nil {
		return "00:00:00:00:00:00"
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback == 0 && len(iface.HardwareAddr) > 0 {
			return iface.HardwareAddr.String()
		}
	}
	return "00:00:00:00:00:00"
}
