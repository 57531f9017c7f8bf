package confirm

import (
	"context"
	"fmt"
	"time"
)

// Decision is the terminal state of a confirmation.
type Decision int

const (
	Rejected Decision = iota
	Approved
)

// String returns the string representation of the decision
func (d Decision) String() string {
	switch d {
	case Approved:
		return "approved"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Request is what the operator is asked.
type Request struct {
	Title   string
	Message string
}

// Provider asks the operator and blocks until a decision is made.
// A non-nil error always comes with Rejected.
type Provider interface {
	Name() string
	Confirm(ctx context.Context, req Request) (Decision, error)
}

// Static answers every request with the same decision without asking anyone.
type Static struct {
	Decision Decision
}

// Name identifies the provider
func (s Static) Name() string {
	return "static-" + s.Decision.String()
}

// Confirm returns the fixed decision
func (s Static) Confirm(context.Context, Request) (Decision, error) {
	return s.Decision, nil
}

// timeoutProvider rejects when the operator does not answer in time.
type timeoutProvider struct {
	Provider
	timeout time.Duration
}

// WithTimeout bounds every confirmation of p. Zero returns p unchanged.
func WithTimeout(p Provider, timeout time.Duration) Provider {
	if timeout <= 0 {
		return p
	}
	return &timeoutProvider{Provider: p, timeout: timeout}
}

func (t *timeoutProvider) Confirm(ctx context.Context, req Request) (Decision, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	decision, err := t.Provider.Confirm(ctx, req)
	if ctx.Err() != nil {
		return Rejected, fmt.Errorf("confirmation timed out after %s", t.timeout)
	}
	return decision, err
}
