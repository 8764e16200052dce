// Package utils provides loose type conversions shared by the registry importers
// and the database layer. Registry exports carry numbers as strings, and raw SQL
// scans return driver-specific types; these helpers fold both into Go numbers.
package utils
