package session

import (
	"context"
	"sync"
)

// RestorerOption customizes restorer construction.
type RestorerOption func(*Restorer)

// WithRestorerLogger overrides the restorer logger.
func WithRestorerLogger(logger Logger) RestorerOption {
	return func(r *Restorer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithRestorerResolver overrides the tenant resolver.
func WithRestorerResolver(resolver *TenantResolver) RestorerOption {
	return func(r *Restorer) {
		if resolver != nil {
			r.resolver = resolver
		}
	}
}

// Restorer resumes a session from the persisted bearer credential at process
// start. It runs at most once per process lifetime; the only exception is a
// transient identity-provider failure, which re-arms the once-latch so the
// presentation layer can offer an explicit retry instead of stalling on a
// loading indicator forever.
type Restorer struct {
	store    *Store
	storage  CredentialStorage
	provider IdentityProvider
	resolver *TenantResolver
	logger   Logger

	mu   sync.Mutex
	done bool
}

// NewRestorer will create a Restorer writing into store.
func NewRestorer(store *Store, provider IdentityProvider, storage CredentialStorage, opts ...RestorerOption) *Restorer {
	r := &Restorer{
		store:    store,
		storage:  storage,
		provider: provider,
		resolver: NewTenantResolver(provider),
		logger:   defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	return r
}

// Run attempts to resume a session from the persisted credential. Repeated
// invocations after a settled run are no-ops. The session always ends settled
// (anonymous or authenticated) regardless of the returned error; the error is
// informational and the UI layer does not need to surface it.
func (r *Restorer) Run(ctx context.Context) error {
	if !r.claim() {
		return nil
	}

	attempt, err := r.store.BeginResuming()
	if err != nil {
		// Session already moved past uninitialized (e.g. an explicit login
		// raced ahead); nothing to restore.
		r.logger.Debug("restoration skipped: %v", err)
		return nil
	}

	credential, err := r.storage.Read(ctx)
	if err != nil {
		r.logger.Warn("credential slot read error: %v", err)
		r.rearm()
		return r.store.ResumeFailed(ctx, attempt, FailureTransient)
	}

	if credential == "" {
		return r.store.ResumeFailed(ctx, attempt, FailureNoCredential)
	}

	user, err := r.provider.GetCurrentUser(ctx, credential)
	if err != nil {
		kind := ClassifyRestoreFailure(err)
		if kind == FailureTransient {
			r.rearm()
		}
		r.logger.Info("restoration failed (%s): %v", kind, err)
		if ferr := r.store.ResumeFailed(ctx, attempt, kind); ferr != nil {
			return ferr
		}
		return err
	}

	var business *Business
	if user.Role.RequiresTenant() {
		business = r.resolver.Resolve(ctx, credential)
	}

	return r.store.ResumeSucceeded(ctx, attempt, user, business, credential)
}

// claim takes the once-latch; false means a run already settled or is in flight.
func (r *Restorer) claim() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done {
		return false
	}
	r.done = true
	return true
}

// rearm releases the once-latch after a transient failure so Run can retry.
func (r *Restorer) rearm() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.done = false
}
