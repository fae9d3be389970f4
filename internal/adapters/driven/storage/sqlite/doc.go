// Package sqlite provides a SQLite-based implementation of the media and
// tag stores.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. Both stores share one database
// connection:
//
//   - MediaStore: media items, their enrichment fields and embeddings
//   - TagStore: user-contributed tags and use counts
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.bonglore/data/bonglore.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode. PatchMedia runs in a transaction so a patch is one
// atomic write.
package sqlite
