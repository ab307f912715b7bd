package session

import (
	"context"
	"errors"
	"testing"

	"github.com/abhiyaya/angelone-claud-mcp/internal/interfaces"
	"github.com/abhiyaya/angelone-claud-mcp/internal/types"
)

type stubVendor struct {
	loginCalls  int
	logoutCalls int
	loginErr    error
}

func (s *stubVendor) Login(ctx context.Context) (types.SessionTokens, error) {
	s.loginCalls++
	if s.loginErr != nil {
		return types.SessionTokens{}, s.loginErr
	}
	return types.SessionTokens{JWTToken: "jwt", FeedToken: "feed"}, nil
}

func (s *stubVendor) Logout(ctx context.Context) error {
	s.logoutCalls++
	return nil
}

func (s *stubVendor) Holdings(ctx context.Context) (*types.Envelope, error) {
	return &types.Envelope{Status: true}, nil
}
func (s *stubVendor) CandleData(ctx context.Context, q types.CandleQuery) (*types.Envelope, error) {
	return &types.Envelope{Status: true}, nil
}
func (s *stubVendor) PlaceOrder(ctx context.Context, req types.OrderRequest) (*types.Envelope, error) {
	return &types.Envelope{Status: true}, nil
}
func (s *stubVendor) CancelOrder(ctx context.Context, orderID, variety string) (*types.Envelope, error) {
	return &types.Envelope{Status: true}, nil
}
func (s *stubVendor) OrderBook(ctx context.Context) (*types.Envelope, error) {
	return &types.Envelope{Status: true}, nil
}

func TestAcquireLogsInOnce(t *testing.T) {
	v := &stubVendor{}
	m := NewManager(v)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := m.Acquire(ctx); err != nil {
			t.Fatalf("Acquire %d error: %v", i, err)
		}
	}

	if v.loginCalls != 1 {
		t.Errorf("Expected exactly one login, got %d", v.loginCalls)
	}
	if !m.Active() {
		t.Error("Expected manager to be active after login")
	}
}

func TestAcquireLoginFailureRetriesNextCall(t *testing.T) {
	v := &stubVendor{loginErr: errors.New("bad totp")}
	m := NewManager(v)
	ctx := context.Background()

	_, err := m.Acquire(ctx)
	if err == nil {
		t.Fatal("Expected login failure")
	}
	var authErr *types.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("Expected AuthError, got %T", err)
	}
	if m.Active() {
		t.Error("Expected manager to stay unauthenticated after failed login")
	}

	// Process remains usable: next call re-attempts login.
	v.loginErr = nil
	if _, err := m.Acquire(ctx); err != nil {
		t.Fatalf("Second Acquire error: %v", err)
	}
	if v.loginCalls != 2 {
		t.Errorf("Expected two login attempts, got %d", v.loginCalls)
	}
}

func TestInvalidateForcesRelogin(t *testing.T) {
	v := &stubVendor{}
	m := NewManager(v)
	ctx := context.Background()

	if _, err := m.Acquire(ctx); err != nil {
		t.Fatal(err)
	}
	m.Invalidate()
	if m.Active() {
		t.Error("Expected inactive after Invalidate")
	}
	if _, err := m.Acquire(ctx); err != nil {
		t.Fatal(err)
	}
	if v.loginCalls != 2 {
		t.Errorf("Expected relogin after invalidation, got %d logins", v.loginCalls)
	}
}

func TestWrapperApplied(t *testing.T) {
	v := &stubVendor{}
	wrapped := 0
	m := NewManager(v, WithWrapper(func(tr interfaces.Trader) interfaces.Trader {
		wrapped++
		return tr
	}))

	if _, err := m.Acquire(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Acquire(context.Background()); err != nil {
		t.Fatal(err)
	}
	if wrapped != 1 {
		t.Errorf("Expected wrapper applied once per session, got %d", wrapped)
	}
}

func TestCloseLogsOutOnlyWhenActive(t *testing.T) {
	v := &stubVendor{}
	m := NewManager(v)
	ctx := context.Background()

	if err := m.Close(ctx); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if v.logoutCalls != 0 {
		t.Errorf("Expected no logout without a session, got %d", v.logoutCalls)
	}

	if _, err := m.Acquire(ctx); err != nil {
		t.Fatal(err)
	}
	if err := m.Close(ctx); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if v.logoutCalls != 1 {
		t.Errorf("Expected one logout, got %d", v.logoutCalls)
	}
	if m.Active() {
		t.Error("Expected inactive after Close")
	}
}
