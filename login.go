package session

import (
	"context"

	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// LoginRequest carries the credentials submitted by the user. TenantSubdomain
// selects the identity namespace to authenticate against: empty means the
// global super-admin namespace, anything else names a specific business. The
// choice is made by a UI-level mode selection external to this core.
type LoginRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	TenantSubdomain string `json:"tenant_subdomain,omitempty"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Email,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}

// LoginFlowOption customizes flow construction.
type LoginFlowOption func(*LoginFlow)

// WithLoginFlowLogger overrides the flow logger.
func WithLoginFlowLogger(logger Logger) LoginFlowOption {
	return func(f *LoginFlow) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithLoginFlowActivitySink sets the ActivitySink for login failure events.
func WithLoginFlowActivitySink(sink ActivitySink) LoginFlowOption {
	return func(f *LoginFlow) {
		f.sink = normalizeActivitySink(sink)
	}
}

// LoginFlow authenticates credentials against the identity provider and, on
// success, populates the store. Failures are always returned to the caller
// for display, never swallowed, and never leave a partial session behind.
type LoginFlow struct {
	provider IdentityProvider
	store    *Store
	logger   Logger
	sink     ActivitySink
}

// NewLoginFlow will create a LoginFlow writing into store.
func NewLoginFlow(provider IdentityProvider, store *Store, opts ...LoginFlowOption) *LoginFlow {
	f := &LoginFlow{
		provider: provider,
		store:    store,
		logger:   defLogger{},
		sink:     noopActivitySink{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}

	return f
}

// Login validates the request locally, submits it to the identity provider,
// and commits the result. A logout issued while the provider response is in
// flight wins: the stale success is discarded and ErrStaleAttempt returned.
func (f *LoginFlow) Login(ctx context.Context, req LoginRequest) error {
	if err := req.Validate(); err != nil {
		return ErrLoginValidation.WithMetadata(map[string]any{
			"validation": err.Error(),
		})
	}

	attempt := f.store.BeginLogin()

	result, err := f.provider.Login(ctx, req)
	if err != nil {
		f.store.LoginFailed(attempt)
		f.emitFailure(ctx, req, err)
		return err
	}

	if result == nil || result.User == nil || result.Credential == "" {
		f.store.LoginFailed(attempt)
		err := ErrServerError.WithMetadata(map[string]any{
			"reason": "identity provider returned an incomplete login result",
		})
		f.emitFailure(ctx, req, err)
		return err
	}

	if err := f.store.LoginSucceeded(ctx, attempt, result.User, result.Business, result.Credential); err != nil {
		// No-op for stale attempts (the generation already moved on); for a
		// rejected commit it keeps the in-flight flag from sticking.
		f.store.LoginFailed(attempt)
		if errors.Is(err, ErrStaleAttempt) {
			f.logger.Info("discarding login response: session moved on (logout during login)")
		}
		return err
	}

	return nil
}

func (f *LoginFlow) emitFailure(ctx context.Context, req LoginRequest, err error) {
	f.logger.Warn("login failed (%s): %v", LoginFailureKindOf(err), err)

	sink := normalizeActivitySink(f.sink)
	event := ActivityEvent{
		EventType: ActivityEventLoginFailure,
		FromPhase: PhaseAnonymous,
		ToPhase:   PhaseAnonymous,
		Metadata: map[string]any{
			"email":  req.Email,
			"tenant": req.TenantSubdomain,
			"kind":   string(LoginFailureKindOf(err)),
			"error":  err.Error(),
		},
	}
	if serr := sink.Record(ctx, event); serr != nil {
		f.logger.Warn("login activity sink error: %v", serr)
	}
}
