// Package ledger contains the pure domain services of the financial core:
// balance maintenance, transaction posting, transfers, budgeting,
// reconciliation, and pay-period arithmetic.
//
// Every service in this package is synchronous, side-effect-free, and
// performs no I/O. Services take already-loaded aggregates and return new
// aggregate states plus derived artifacts (journal entries); loading and
// persisting those aggregates is the service layer's job.
package ledger
