// Package totp generates time-based one-time passwords from the
// account's shared seed, as required by the SmartAPI login endpoint.
package totp

import (
	"time"

	"github.com/pquerna/otp/totp"

	"github.com/abhiyaya/angelone-claud-mcp/internal/interfaces"
)

type Source struct {
	seed string
	now  func() time.Time
}

var _ interfaces.CodeSource = (*Source)(nil)

func New(seed string) *Source {
	return &Source{seed: seed, now: time.Now}
}

// Now returns the 6-digit code for the current 30s window.
func (s *Source) Now() (string, error) {
	return totp.GenerateCode(s.seed, s.now())
}
