// Package matches stores, exports and serves reconciled match records.
//
// Records are persisted through gorm into the match_records table, keyed by the
// canonical reconciliation key so that re-running an extraction updates rows in
// place. The CSV layout uses the Team1_/Team2_ column namespaces, optionally
// followed by the registry statistics attached by the identity resolver.
package matches
