package session

// Outcome is the access gate's verdict for a protected view.
type Outcome string

const (
	// OutcomeAllow means the view may be rendered.
	OutcomeAllow Outcome = "allow"
	// OutcomeDefer means the session is not settled yet; render a neutral
	// loading placeholder and do not redirect.
	OutcomeDefer Outcome = "defer"
	// OutcomeDeny means the view must not be rendered; the caller redirects
	// based on the reason.
	OutcomeDeny Outcome = "deny"
)

// DenyReason tells the caller where to redirect on a deny.
type DenyReason string

const (
	// DenyReasonUnauthenticated sends the user to the login entry point.
	DenyReasonUnauthenticated DenyReason = "unauthenticated"
	// DenyReasonForbidden sends the user to the unauthorized-access view.
	DenyReasonForbidden DenyReason = "forbidden"
)

// Decision is the result of evaluating a snapshot against a set of allowed roles.
type Decision struct {
	Outcome Outcome
	Reason  DenyReason
}

// Allowed reports whether the view may be rendered.
func (d Decision) Allowed() bool { return d.Outcome == OutcomeAllow }

// Deferred reports whether the session is still settling.
func (d Decision) Deferred() bool { return d.Outcome == OutcomeDefer }

// Denied reports whether rendering must be refused.
func (d Decision) Denied() bool { return d.Outcome == OutcomeDeny }

// Evaluate decides whether a protected view may be rendered for the given
// session snapshot. It is a pure function with no side effects so the routing
// decision table can be unit-tested exhaustively with synthetic sessions.
//
// An empty allowedRoles set means any authenticated role suffices.
func Evaluate(snap Snapshot, allowedRoles ...Role) Decision {
	switch snap.phase() {
	case PhaseUninitialized, PhaseResuming:
		return Decision{Outcome: OutcomeDefer}
	case PhaseAnonymous:
		return Decision{Outcome: OutcomeDeny, Reason: DenyReasonUnauthenticated}
	case PhaseAuthenticated:
		role, ok := snap.Role()
		if !ok {
			return Decision{Outcome: OutcomeDeny, Reason: DenyReasonUnauthenticated}
		}
		if len(allowedRoles) == 0 {
			return Decision{Outcome: OutcomeAllow}
		}
		for _, allowed := range allowedRoles {
			if role == allowed {
				return Decision{Outcome: OutcomeAllow}
			}
		}
		return Decision{Outcome: OutcomeDeny, Reason: DenyReasonForbidden}
	default:
		// Unknown phase from a corrupted snapshot: treat as not settled
		// rather than leaking a protected view.
		return Decision{Outcome: OutcomeDefer}
	}
}
