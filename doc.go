// Package session is the session and access-control core for a multi-tenant
// point-of-sale administration app. It owns the authoritative session snapshot
// (who is signed in, which role they hold, which business they belong to) and
// the access decision that guards every protected view.
//
// Session lifecycle:
//   - A Store holds exactly one Session snapshot moving through the phases
//     uninitialized, resuming, anonymous, and authenticated. Every write goes
//     through a named transition operation; illegal transitions are rejected,
//     and subscribers are notified synchronously after each commit.
//   - The Restorer runs once at process start and re-establishes a session
//     from the persisted bearer credential. A rejected credential erases the
//     slot; a transient identity-provider failure keeps it so a later run can
//     retry.
//   - LoginFlow validates credentials locally, authenticates against the
//     identity provider, and populates the Store. Login and restore attempts
//     are sequence-tagged so a Logout always wins over a response that
//     resolves afterward.
//
// Access decisions:
//   - Evaluate is a pure function of a Snapshot and a set of allowed roles.
//     It never touches the Store, which keeps the routing decision table
//     exhaustively testable with synthetic sessions.
//
// Activity sinks:
//   - ActivitySink is a light-weight audit emitter describing resume, login,
//     and logout events. Sinks run best-effort (errors are logged) so you can
//     forward to a database or queue without blocking authentication.
package session
