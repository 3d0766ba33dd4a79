// Package service contains the application orchestrators. Each use case
// loads the aggregates it needs through the store ports, hands them to the
// pure services in internal/domain/ledger, and persists every produced
// aggregate plus journal entries inside one store.RunInTransaction call.
//
// The first error in a use case short-circuits it; nothing is persisted on
// failure.
package service
