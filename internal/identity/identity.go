package identity

import (
	"context"
	"fmt"

	"github.com/feral-file/ff-metadata-registry/internal/domain"
)

type callerKey struct{}

// Provider exposes the identity of the current caller and the fixed owner identity
//
//go:generate mockgen -source=identity.go -destination=../mocks/identity.go -package=mocks -mock_names=Provider=MockIdentityProvider
type Provider interface {
	// Caller returns the authenticated caller carried by the context
	Caller(ctx context.Context) (domain.Address, bool)
	// Owner returns the identity allowed to mutate the registry
	Owner() domain.Address
}

// WithCaller returns a context carrying the authenticated caller
func WithCaller(ctx context.Context, caller domain.Address) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// CallerFromContext returns the caller stored by WithCaller
func CallerFromContext(ctx context.Context) (domain.Address, bool) {
	if ctx == nil {
		return "", false
	}
	caller, ok := ctx.Value(callerKey{}).(domain.Address)
	if !ok || caller == "" {
		return "", false
	}
	return caller, true
}

type contextProvider struct {
	owner domain.Address
}

// NewProvider creates a provider reading the caller from the context.
// The owner must be a non-zero hex address; it is fixed for the lifetime of the provider.
func NewProvider(owner string) (Provider, error) {
	addr, ok := domain.NormalizeAddress(owner)
	if !ok {
		return nil, fmt.Errorf("invalid owner address: %q", owner)
	}
	if addr.IsZeroAddress() {
		return nil, fmt.Errorf("owner address must not be the zero address")
	}

	return &contextProvider{owner: addr}, nil
}

func (p *contextProvider) Caller(ctx context.Context) (domain.Address, bool) {
	return CallerFromContext(ctx)
}

func (p *contextProvider) Owner() domain.Address {
	return p.owner
}

// IsOwner reports whether the caller in ctx is the provider's owner
func IsOwner(ctx context.Context, p Provider) bool {
	caller, ok := p.Caller(ctx)
	return ok && caller == p.Owner()
}
