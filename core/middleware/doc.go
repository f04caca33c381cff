// Package middleware groups the fiber middleware of the HTTP surface.
//
//   - auth: rejects requests missing the configured X-API-Key.
//   - rayid: tags every request with an id, stored in Locals and echoed as X-Ray-ID.
//
// rayid is registered first so every later log line carries the id.
package middleware
