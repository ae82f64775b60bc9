package session

import (
	"context"
	"sync"
	"time"
)

// StoreOption customizes store construction.
type StoreOption func(*Store)

// WithStoreLogger overrides the logger used for persistence and sink failures.
func WithStoreLogger(logger Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStoreActivitySink sets the ActivitySink used to publish session events.
func WithStoreActivitySink(sink ActivitySink) StoreOption {
	return func(s *Store) {
		s.sink = normalizeActivitySink(sink)
	}
}

// WithStoreClock injects a custom clock (useful for tests).
func WithStoreClock(clock func() time.Time) StoreOption {
	return func(s *Store) {
		if clock != nil {
			s.now = clock
		}
	}
}

// Store owns the authoritative session snapshot and the durable credential
// slot. All writes go through the named transition operations below; each
// committed transition bumps the snapshot generation and notifies subscribers
// synchronously. Asynchronous login/restore attempts carry the generation they
// started from, and completions whose tag no longer matches are discarded
// with ErrStaleAttempt so a logout always wins over a late success.
type Store struct {
	mu          sync.Mutex
	snap        Snapshot
	storage     CredentialStorage
	transitions map[Phase]map[Phase]struct{}
	subscribers []storeSubscriber
	nextSubID   int
	logger      Logger
	sink        ActivitySink
	now         func() time.Time
}

type storeSubscriber struct {
	id int
	fn Subscriber
}

// NewStore returns a store in the uninitialized phase backed by the provided
// credential storage.
func NewStore(storage CredentialStorage, opts ...StoreOption) *Store {
	s := &Store{
		snap:    Snapshot{Phase: PhaseUninitialized},
		storage: storage,
		transitions: map[Phase]map[Phase]struct{}{
			PhaseUninitialized: {
				PhaseResuming: {},
			},
			PhaseResuming: {
				PhaseAnonymous:     {},
				PhaseAuthenticated: {},
			},
			PhaseAnonymous: {
				PhaseResuming:      {},
				PhaseAnonymous:     {},
				PhaseAuthenticated: {},
			},
			PhaseAuthenticated: {
				PhaseAnonymous: {},
			},
		},
		logger: defLogger{},
		sink:   noopActivitySink{},
		now:    time.Now,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	return s
}

// Snapshot returns a copy of the current session state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.clone()
}

// Generation returns the current session generation.
func (s *Store) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Generation
}

// Subscribe registers fn to be called synchronously after every committed
// transition. The returned cancel function removes the subscription.
func (s *Store) Subscribe(fn Subscriber) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSubID++
	id := s.nextSubID
	s.subscribers = append(s.subscribers, storeSubscriber{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

// BeginResuming marks the start of a restoration attempt and returns its
// sequence tag. Legal only from the uninitialized phase.
func (s *Store) BeginResuming() (uint64, error) {
	s.mu.Lock()

	if err := s.canTransition(PhaseResuming); err != nil {
		s.mu.Unlock()
		return 0, err
	}

	s.snap.Phase = PhaseResuming
	s.snap.Generation++
	attempt := s.snap.Generation

	s.notifyLocked()
	return attempt, nil
}

// ResumeSucceeded completes restoration as authenticated and persists the
// credential. business may be nil for super admins and for degraded tenant
// resolution.
func (s *Store) ResumeSucceeded(ctx context.Context, attempt uint64, user *User, business *Business, credential string) error {
	s.mu.Lock()

	if err := s.ensureCurrentAttempt(attempt); err != nil {
		s.mu.Unlock()
		return err
	}
	if err := s.canTransition(PhaseAuthenticated); err != nil {
		s.mu.Unlock()
		return err
	}

	from := s.snap.Phase
	s.snap.Phase = PhaseAuthenticated
	s.snap.User = user.Clone()
	s.snap.Business = business.Clone()
	s.snap.Credential = credential
	s.snap.Generation++

	s.persistLocked(ctx, credential)
	s.recordLocked(ctx, ActivityEventResumeSuccess, from, nil)

	s.notifyLocked()
	return nil
}

// ResumeFailed completes restoration without an authenticated user. A
// confirmed credential rejection erases the persisted slot; a transient
// failure and the no-credential case leave it untouched.
func (s *Store) ResumeFailed(ctx context.Context, attempt uint64, kind FailureKind) error {
	s.mu.Lock()

	if err := s.ensureCurrentAttempt(attempt); err != nil {
		s.mu.Unlock()
		return err
	}
	if err := s.canTransition(PhaseAnonymous); err != nil {
		s.mu.Unlock()
		return err
	}

	from := s.snap.Phase
	s.snap.Phase = PhaseAnonymous
	s.snap.User = nil
	s.snap.Business = nil
	s.snap.Credential = ""
	s.snap.Generation++

	if kind == FailureAuthenticationRejected {
		s.clearSlotLocked(ctx)
	}
	s.recordLocked(ctx, ActivityEventResumeFailure, from, map[string]any{
		"reason": string(kind),
	})

	s.notifyLocked()
	return nil
}

// BeginLogin marks a login attempt as in flight and returns its sequence tag.
// The tag is invalidated by any transition committed before the attempt
// completes, a logout in particular.
func (s *Store) BeginLogin() uint64 {
	s.mu.Lock()

	attempt := s.snap.Generation
	s.snap.LoginInFlight = true

	s.notifyLocked()
	return attempt
}

// LoginSucceeded commits a successful login atomically and persists the
// credential. A stale attempt tag means the session moved on (the user logged
// out while the response was in flight) and the success is discarded.
func (s *Store) LoginSucceeded(ctx context.Context, attempt uint64, user *User, business *Business, credential string) error {
	s.mu.Lock()

	if err := s.ensureCurrentAttempt(attempt); err != nil {
		s.mu.Unlock()
		return err
	}
	if err := s.canTransition(PhaseAuthenticated); err != nil {
		s.mu.Unlock()
		return err
	}

	from := s.snap.Phase
	s.snap.Phase = PhaseAuthenticated
	s.snap.User = user.Clone()
	s.snap.Business = business.Clone()
	s.snap.Credential = credential
	s.snap.Generation++
	s.snap.LoginInFlight = false

	s.persistLocked(ctx, credential)
	s.recordLocked(ctx, ActivityEventLoginSuccess, from, nil)

	s.notifyLocked()
	return nil
}

// LoginFailed clears the in-flight flag for the attempt. The session is left
// exactly as it was: a failed login never performs a partial write.
func (s *Store) LoginFailed(attempt uint64) {
	s.mu.Lock()

	if attempt != s.snap.Generation || !s.snap.LoginInFlight {
		s.mu.Unlock()
		return
	}

	s.snap.LoginInFlight = false
	s.notifyLocked()
}

// Logout drops the authenticated session and erases the persisted credential.
// It is also legal while anonymous so a user can abandon a pending login; the
// generation bump invalidates any login response still in flight. Logout is
// rejected while resuming: restoration must settle first, even though the
// table allows Resuming to Anonymous for ResumeFailed.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()

	if from := s.snap.phase(); from == PhaseResuming {
		s.mu.Unlock()
		return ErrInvalidTransition.WithMetadata(map[string]any{
			"from":      string(from),
			"to":        string(PhaseAnonymous),
			"operation": "logout",
		})
	}
	if err := s.canTransition(PhaseAnonymous); err != nil {
		s.mu.Unlock()
		return err
	}

	from := s.snap.Phase
	var meta map[string]any
	if s.snap.User != nil {
		meta = map[string]any{"user_id": s.snap.User.ID.String()}
	}
	s.snap.Phase = PhaseAnonymous
	s.snap.User = nil
	s.snap.Business = nil
	s.snap.Credential = ""
	s.snap.Generation++
	s.snap.LoginInFlight = false

	s.clearSlotLocked(ctx)
	s.recordLocked(ctx, ActivityEventLogout, from, meta)

	s.notifyLocked()
	return nil
}

// canTransition must be called with the lock held.
func (s *Store) canTransition(to Phase) error {
	from := s.snap.phase()
	if allowed, ok := s.transitions[from]; ok {
		if _, exists := allowed[to]; exists {
			return nil
		}
	}
	return ErrInvalidTransition.WithMetadata(map[string]any{
		"from": string(from),
		"to":   string(to),
	})
}

// ensureCurrentAttempt must be called with the lock held.
func (s *Store) ensureCurrentAttempt(attempt uint64) error {
	if attempt == s.snap.Generation {
		return nil
	}
	return ErrStaleAttempt.WithMetadata(map[string]any{
		"attempt":    attempt,
		"generation": s.snap.Generation,
	})
}

// persistLocked writes the credential slot. Persistence failures are logged,
// not fatal: the in-memory session stays authoritative and the worst case is
// a missing credential on the next restoration.
func (s *Store) persistLocked(ctx context.Context, credential string) {
	if s.storage == nil {
		return
	}
	if err := s.storage.Write(ctx, credential); err != nil {
		s.logger.Warn("credential slot write error: %v", err)
	}
}

// clearSlotLocked erases the credential slot, logging on failure.
func (s *Store) clearSlotLocked(ctx context.Context) {
	if s.storage == nil {
		return
	}
	if err := s.storage.Clear(ctx); err != nil {
		s.logger.Warn("credential slot clear error: %v", err)
	}
}

// recordLocked emits an activity event describing the transition being committed.
func (s *Store) recordLocked(ctx context.Context, eventType ActivityEventType, from Phase, metadata map[string]any) {
	event := ActivityEvent{
		EventType:  eventType,
		FromPhase:  from,
		ToPhase:    s.snap.Phase,
		Metadata:   metadata,
		OccurredAt: s.now(),
	}
	if s.snap.User != nil {
		event.UserID = s.snap.User.ID.String()
	}
	if s.snap.Business != nil {
		event.BusinessID = s.snap.Business.ID.String()
	}

	sink := normalizeActivitySink(s.sink)
	if err := sink.Record(ctx, event); err != nil {
		s.logger.Warn("session activity sink error: %v", err)
	}
}

// notifyLocked snapshots the subscriber list, releases the lock, and invokes
// each subscriber with its own copy before returning to the caller.
func (s *Store) notifyLocked() {
	subs := make([]storeSubscriber, len(s.subscribers))
	copy(subs, s.subscribers)
	snap := s.snap
	s.mu.Unlock()

	for _, sub := range subs {
		if sub.fn != nil {
			sub.fn(snap.clone())
		}
	}
}
