// Package reconcile merges one-sided round observations into two-sided match records.
//
// Every team in a cumulative sheet reports its own view of each round, so a
// regular round normally shows up twice: once from each side. The engine pairs
// those reciprocal views into a single MatchRecord and synthesizes the missing
// half for rounds that have no usable reciprocal.
//
// # Grouping
//
// Observations are partitioned by event context (tournament, year, source
// document). Reciprocal matching never crosses a group boundary. Groups are
// processed in sorted key order and, within a group, observations are visited in
// (round, team) order so the output does not depend on input order.
//
// # Strategies
//
// For each observation the engine tries, in order:
//
// 1. Degenerate: the opponent is BYE or FORFEIT. The record is emitted as-is with
//    a synthesized zero-stat opponent.
//
// 2. Exact: the opponent reported this team in the same round. The visiting
//    observation becomes Team1. With several candidates the first one wins and a
//    ReconciliationAmbiguity is recorded.
//
// 3. Opponent forfeit: the opponent reported FORFEIT for the round. Its
//    observation is turned into a zero-point loss on the opposite side.
//
// 4. Implicit forfeit: this team lost with zero points and the opponent has
//    exactly one win that round. That win is taken as the reciprocal.
//
// 5. Unresolved: Team2 is filled with missing-data sentinels and a
//    ReconciliationMiss is recorded. Unresolved records are emitted after the
//    paired records of their group.
//
// # Deduplication
//
// Paired records are keyed by the sorted team pair, the round and the context
// (PairKey). Degenerate and unresolved records are keyed by the reporting team
// instead (SingleKey). A key is emitted at most once per run.
//
// # Usage
//
//	diags := diag.New()
//	records := reconcile.Reconcile(observations, diags)
//	summary := reconcile.Summarize(records)
package reconcile
