package types

import "fmt"

// AuthError wraps a failed login so callers can distinguish it from
// downstream trading failures.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// APIError is a SmartAPI call that completed but was rejected by the
// vendor (status=false envelope or a non-2xx response).
type APIError struct {
	Op        string
	ErrorCode string
	Message   string
}

func (e *APIError) Error() string {
	if e.ErrorCode == "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Op, e.Message, e.ErrorCode)
}

// TokenExpired reports whether the vendor rejected the session token.
// AB1010 and the AG80xx family cover invalid/expired token responses.
func (e *APIError) TokenExpired() bool {
	switch e.ErrorCode {
	case "AG8001", "AG8002", "AG8003", "AB1010":
		return true
	}
	return false
}

// ValidationError is a tool invocation rejected before any vendor call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
