package session

import "context"

// TenantResolver fetches the business profile bound to an authenticated,
// non-platform user. Resolution failure is a degradation, never an
// authentication failure: consumers get nil and render a generic label.
type TenantResolver struct {
	provider IdentityProvider
	logger   Logger
}

// NewTenantResolver will create a new TenantResolver
func NewTenantResolver(provider IdentityProvider) *TenantResolver {
	return &TenantResolver{
		provider: provider,
		logger:   defLogger{},
	}
}

func (r *TenantResolver) WithLogger(logger Logger) *TenantResolver {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// Resolve returns the business bound to the credential, or nil on any
// failure. Failures are logged and never escalated.
func (r *TenantResolver) Resolve(ctx context.Context, credential string) *Business {
	business, err := r.provider.GetBusinessProfile(ctx, credential)
	if err != nil {
		r.logger.Warn("tenant resolution failed, continuing without business: %v", err)
		return nil
	}
	return business
}
