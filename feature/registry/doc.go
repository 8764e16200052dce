// Package registry provides the external per-year registries the identity
// resolver joins against.
//
// Two registries exist for every season:
//   - debate_teams_<year>.json: team profiles keyed by their two debaters.
//   - tournaments_<year>.json: tournaments with state, dates and per-event field sizes.
//
// # Sources
//
// A Source reads registries either from a local directory (DirSource) or from
// object storage under a prefix (StorageSource). A missing file is reported as
// ErrNotFound. Cache wraps a Source and loads each year once, even under
// concurrent callers.
//
// # HTML import
//
// ParseTeamPage, ParseTournamentList and ParseTournamentPage convert saved
// profile pages into registry records. Fetching the pages is left to the caller.
package registry
