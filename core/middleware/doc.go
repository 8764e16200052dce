// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation. Keys are read from X-API-Key or a Bearer token.
//   - rayid: assigns every request a RayID (or reuses an incoming X-Ray-ID),
//     stores it in the context locals and echoes it in the response headers.
//   - requestlog: one zap entry per request tagged with the RayID, so it must
//     be registered after rayid.
package middleware
