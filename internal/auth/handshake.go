package auth

import (
	"context"
	"time"
)

// AttemptFunc tries once to obtain credentials from the identity provider.
type AttemptFunc func(ctx context.Context) (User, error)

// Handshake resolves the acting user against an identity provider that may
// not be ready yet (the hosting portal answers the readiness signal whenever
// it gets around to it). It retries on a fixed interval for at most
// maxAttempts and always reaches a definite terminal state: the resolved
// user, or Anonymous with ok=false.
func Handshake(ctx context.Context, attempt AttemptFunc, interval time.Duration, maxAttempts int) (User, bool) {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	if interval <= 0 {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for tries := 0; tries < maxAttempts; tries++ {
		u, err := attempt(ctx)
		if err == nil && u.Role.IsValid() {
			return u, true
		}
		if tries == maxAttempts-1 {
			break
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return Anonymous, false
		}
	}
	return Anonymous, false
}
