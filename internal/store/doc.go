// Package store defines the persistence ports of the ledger core: one
// interface per aggregate, the DBTX abstraction over connections and
// transactions, and RunInTransaction, the unit-of-work every
// multi-aggregate use case commits through.
//
// The domain and ledger packages never see these interfaces; only the
// service layer loads and saves aggregates through them.
package store
