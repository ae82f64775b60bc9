package session

import "fmt"

// Phase is the tagged state of a session. Exactly one phase holds at a time.
type Phase string

const (
	// PhaseUninitialized is the phase at process start, before restoration.
	PhaseUninitialized Phase = "uninitialized"
	// PhaseResuming means a restoration attempt is in flight.
	PhaseResuming Phase = "resuming"
	// PhaseAnonymous means no authenticated user.
	PhaseAnonymous Phase = "anonymous"
	// PhaseAuthenticated means a user is signed in.
	PhaseAuthenticated Phase = "authenticated"
)

// IsValid checks if the phase is one of the predefined variants
func (p Phase) IsValid() bool {
	switch p {
	case PhaseUninitialized, PhaseResuming, PhaseAnonymous, PhaseAuthenticated:
		return true
	default:
		return false
	}
}

// IsSettled reports whether the phase is a terminal outcome of restoration.
func (p Phase) IsSettled() bool {
	return p == PhaseAnonymous || p == PhaseAuthenticated
}

// Snapshot is an immutable copy of the session at one instant. User, Business
// and Credential are meaningful only when Phase is PhaseAuthenticated;
// Business may be nil for super admins and for degraded tenant resolution.
//
// LoginInFlight is orthogonal to Phase: it marks a pending login attempt
// without folding it into the state union.
type Snapshot struct {
	Phase         Phase
	User          *User
	Business      *Business
	Credential    string
	Generation    uint64
	LoginInFlight bool
}

// IsAuthenticated reports whether a user is signed in.
func (s Snapshot) IsAuthenticated() bool {
	return s.phase() == PhaseAuthenticated && s.User != nil
}

// Role returns the authenticated user's role, or false when anonymous.
func (s Snapshot) Role() (Role, bool) {
	if !s.IsAuthenticated() {
		return "", false
	}
	return s.User.Role, true
}

// BusinessName returns the resolved business name or a generic fallback, so
// consumers can render a degraded session without special-casing nil.
func (s Snapshot) BusinessName(fallback string) string {
	if s.Business == nil || s.Business.Name == "" {
		return fallback
	}
	return s.Business.Name
}

// phase normalizes the zero value so a zero Snapshot behaves as uninitialized.
func (s Snapshot) phase() Phase {
	if s.Phase == "" {
		return PhaseUninitialized
	}
	return s.Phase
}

// clone deep-copies the snapshot so store state stays isolated from callers.
func (s Snapshot) clone() Snapshot {
	out := s
	out.User = s.User.Clone()
	out.Business = s.Business.Clone()
	return out
}

func (s Snapshot) String() string {
	user := "<nil>"
	if s.User != nil {
		user = fmt.Sprintf("%s (%s)", s.User.Email, s.User.Role)
	}
	return fmt.Sprintf("phase=%s gen=%d user=%s business=%s login_in_flight=%t",
		s.phase(), s.Generation, user, s.BusinessName("<none>"), s.LoginInFlight)
}
