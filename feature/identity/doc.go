// Package identity links reconciled match records to the external registries.
//
// Team codes on cumulative sheets are only unique within one season, so a
// team is identified by its two debaters. Names are normalized (whitespace,
// case folding, punctuation, transliteration to ASCII, surname prefixes) and
// expanded into variant spellings; every pairing of the two members' variants,
// in both orders, is a lookup key. The first key present in the team registry
// wins.
//
// Tournaments attended by a team are matched to the event registry by exact
// name, falling back to keyword Jaccard similarity. The matched events supply
// the state and field size behind the exposure, size and tournament point
// statistics.
package identity
