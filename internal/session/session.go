// Package session owns the lazily-established vendor session: one
// login on first use, cached handle afterwards, invalidation when the
// vendor reports an expired token.
package session

import (
	"context"
	"sync"

	"github.com/abhiyaya/angelone-claud-mcp/internal/interfaces"
	"github.com/abhiyaya/angelone-claud-mcp/internal/logger"
	"github.com/abhiyaya/angelone-claud-mcp/internal/metrics"
	"github.com/abhiyaya/angelone-claud-mcp/internal/types"
)

// Vendor is what the manager needs from the SmartAPI client: the
// trading surface plus the auth lifecycle.
type Vendor interface {
	interfaces.Trader
	Login(ctx context.Context) (types.SessionTokens, error)
	Logout(ctx context.Context) error
}

type Option func(*Manager)

// WithWrapper decorates the trader handle returned by Acquire, e.g.
// with the observability middleware.
func WithWrapper(wrap func(interfaces.Trader) interfaces.Trader) Option {
	return func(m *Manager) { m.wrap = wrap }
}

type Manager struct {
	vendor Vendor
	wrap   func(interfaces.Trader) interfaces.Trader

	mu     sync.Mutex
	active bool
	trader interfaces.Trader
}

func NewManager(vendor Vendor, opts ...Option) *Manager {
	m := &Manager{vendor: vendor}
	for _, opt := range opts {
		opt(m)
	}
	if m.wrap == nil {
		m.wrap = func(t interfaces.Trader) interfaces.Trader { return t }
	}
	return m
}

// Acquire returns the authenticated trader, logging in first if no
// session is cached. A failed login leaves the manager unauthenticated
// so the next call retries.
func (m *Manager) Acquire(ctx context.Context) (interfaces.Trader, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active {
		return m.trader, nil
	}

	tokens, err := m.vendor.Login(ctx)
	metrics.Login(err)
	if err != nil {
		logger.ErrorWithErr(ctx, "SmartAPI login failed", err)
		return nil, &types.AuthError{Err: err}
	}

	logger.Info(ctx, "SmartAPI session established", "feed_token_present", tokens.FeedToken != "")
	m.active = true
	m.trader = m.wrap(m.vendor)
	return m.trader, nil
}

// Invalidate drops the cached session. The next Acquire logs in again.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = false
	m.trader = nil
}

// Active reports whether a session is currently cached.
func (m *Manager) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// Close logs out of the vendor session if one was established.
func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.active {
		return nil
	}
	m.active = false
	m.trader = nil

	if err := m.vendor.Logout(ctx); err != nil {
		logger.Warn(ctx, "SmartAPI logout failed", "error", err)
		return err
	}
	logger.Info(ctx, "SmartAPI session closed")
	return nil
}
