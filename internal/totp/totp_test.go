package totp

import (
	"testing"
	"time"
)

// RFC 6238 appendix B vector: the 20-byte seed "12345678901234567890"
// (base32 below), T=59s yields 94287082 for 8 digits, so 287082 for 6.
func TestNowRFCVector(t *testing.T) {
	s := New("GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ")
	s.now = func() time.Time { return time.Unix(59, 0).UTC() }

	code, err := s.Now()
	if err != nil {
		t.Fatalf("Now() error: %v", err)
	}
	if code != "287082" {
		t.Errorf("Expected code 287082, got %s", code)
	}
}

func TestNowBadSeed(t *testing.T) {
	s := New("not-base32!!")
	if _, err := s.Now(); err == nil {
		t.Error("Expected error for malformed seed")
	}
}
