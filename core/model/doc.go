// Package model defines the records that flow through the pipeline.
//
// Observations are one team's view of a round and are produced by the cumulative
// sheet parser. MatchRecords are the reconciled two-sided rounds handed to
// downstream consumers; the identity resolver only ever attaches statistics to them.
//
// A round is one of three variants (RegularRound, ByeRound, ForfeitRound). Callers
// switch on the concrete type instead of looking up optional fields, and the
// BYE/FORFEIT policy (forced side and outcome) lives in the Observation accessors.
package model
