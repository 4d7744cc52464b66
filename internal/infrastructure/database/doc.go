// Package database provides the SQLite-backed store for the portal.
//
// The portal deliberately runs against an in-memory database by default:
// all collections are seeded and generated at process start, and a restart
// discards everything. The same wrapper supports a filesystem path for
// inspecting generated data during development.
//
// Schema is applied via embedded migration files registered by the
// top-level migrations package.
package database
