// Package audit provides the append-only ledger of sensitive vault
// operations.
//
// One event type exists per audited action. Events are recorded after
// the primary operation commits; a failed append never rolls the
// operation back but is logged and counted so monitoring can detect
// ledger gaps.
//
//	recorder.Record(ctx, audit.FetchEvent{User: "alice", Secret: "db-pass"})
package audit
