package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	session "github.com/tillworks/go-session"
)

func TestEvaluateDecisionTable(t *testing.T) {
	tests := []struct {
		name    string
		snap    session.Snapshot
		roles   []session.Role
		outcome session.Outcome
		reason  session.DenyReason
	}{
		{
			name:    "uninitialized defers",
			snap:    session.Snapshot{Phase: session.PhaseUninitialized},
			roles:   []session.Role{session.RoleCashier},
			outcome: session.OutcomeDefer,
		},
		{
			name:    "zero value snapshot defers",
			snap:    session.Snapshot{},
			outcome: session.OutcomeDefer,
		},
		{
			name:    "resuming defers",
			snap:    session.Snapshot{Phase: session.PhaseResuming},
			roles:   []session.Role{session.RoleSuperAdmin},
			outcome: session.OutcomeDefer,
		},
		{
			name:    "anonymous denied unauthenticated",
			snap:    session.Snapshot{Phase: session.PhaseAnonymous},
			outcome: session.OutcomeDeny,
			reason:  session.DenyReasonUnauthenticated,
		},
		{
			name: "authenticated with matching role allowed",
			snap: session.Snapshot{
				Phase: session.PhaseAuthenticated,
				User:  newCashier(),
			},
			roles:   []session.Role{session.RoleBusinessAdmin, session.RoleCashier},
			outcome: session.OutcomeAllow,
		},
		{
			name: "authenticated with wrong role forbidden",
			snap: session.Snapshot{
				Phase: session.PhaseAuthenticated,
				User:  newCashier(),
			},
			roles:   []session.Role{session.RoleSuperAdmin},
			outcome: session.OutcomeDeny,
			reason:  session.DenyReasonForbidden,
		},
		{
			name: "authenticated with no role restriction allowed",
			snap: session.Snapshot{
				Phase: session.PhaseAuthenticated,
				User:  newBusinessAdmin(),
			},
			outcome: session.OutcomeAllow,
		},
		{
			name:    "authenticated without user denied unauthenticated",
			snap:    session.Snapshot{Phase: session.PhaseAuthenticated},
			roles:   []session.Role{session.RoleCashier},
			outcome: session.OutcomeDeny,
			reason:  session.DenyReasonUnauthenticated,
		},
		{
			name:    "corrupted phase defers",
			snap:    session.Snapshot{Phase: session.Phase("bogus")},
			outcome: session.OutcomeDefer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := session.Evaluate(tt.snap, tt.roles...)
			assert.Equal(t, tt.outcome, decision.Outcome)
			assert.Equal(t, tt.reason, decision.Reason)
		})
	}
}

func TestEvaluateAllowsOnlyAuthenticated(t *testing.T) {
	phases := []session.Phase{
		session.PhaseUninitialized,
		session.PhaseResuming,
		session.PhaseAnonymous,
		session.PhaseAuthenticated,
	}

	for _, phase := range phases {
		snap := session.Snapshot{Phase: phase, User: newSuperAdmin()}
		decision := session.Evaluate(snap)
		if phase == session.PhaseAuthenticated {
			assert.True(t, decision.Allowed(), "phase %s", phase)
		} else {
			assert.False(t, decision.Allowed(), "phase %s must never render a protected view", phase)
		}
	}
}

func TestEvaluateDuringLoginInFlight(t *testing.T) {
	// An anonymous session with a login submission in flight is still
	// anonymous for access purposes.
	snap := session.Snapshot{Phase: session.PhaseAnonymous, LoginInFlight: true}
	decision := session.Evaluate(snap, session.RoleCashier)

	assert.True(t, decision.Denied())
	assert.Equal(t, session.DenyReasonUnauthenticated, decision.Reason)
}

func TestDecisionPredicates(t *testing.T) {
	assert.True(t, session.Decision{Outcome: session.OutcomeAllow}.Allowed())
	assert.True(t, session.Decision{Outcome: session.OutcomeDefer}.Deferred())
	assert.True(t, session.Decision{Outcome: session.OutcomeDeny}.Denied())
	assert.False(t, session.Decision{Outcome: session.OutcomeDeny}.Allowed())
}
