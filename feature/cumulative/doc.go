// Package cumulative turns the text dump of a cumulative results sheet into
// one-sided round observations.
//
// A sheet lists every team in turn: three header lines (member 1, the code line
// with the team code and organization, member 2), one group of lines per round,
// and a "wins - losses" summary line. Page headers and dates are interleaved
// at arbitrary points.
//
// # Pipeline
//
//  1. SplitBlocks cuts the stream after every summary line.
//  2. CleanBlock removes blank and boilerplate lines (NoiseFilter).
//  3. RecoverHeader finds the three header lines by backing off from the first
//     terminal token, so stray lines above the header are skipped.
//  4. SplitRounds and DecodeRound turn the remaining lines into RegularRound,
//     ByeRound or ForfeitRound values.
//
// Failures never abort a document; they are recorded in a diag.Diagnostics.
// Only an empty document (or an empty batch) returns ErrEmptyInput.
//
// # Context
//
// InferContext reads the tournament name and year from the boilerplate lines.
// With FilenameThenContent a document named "2024_region5.txt" gets year 2024
// regardless of its content.
//
// # Usage
//
//	docs, err := cumulative.LoadDir(cfg.Pipeline.InputDir, cfg.Pipeline.Extension)
//	opts, err := cfg.Pipeline.Options()
//	results, err := cumulative.ExtractAll(ctx, docs, opts, diags)
//	observations := cumulative.Observations(results)
package cumulative
