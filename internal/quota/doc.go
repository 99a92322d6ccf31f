// Package quota implements the per-user, per-day generation ledger.
//
// The ledger exposes a read-only Peek used as an early exit, and a
// ReserveAndIncrement that runs inside the caller's transaction so the
// counter only moves when the generated items are committed with it.
// Lock serializes the commit section for one (user, day) key inside the
// process; the conditional UPDATE keeps the ceiling across processes.
package quota
