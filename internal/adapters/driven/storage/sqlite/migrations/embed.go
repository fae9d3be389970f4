// Package migrations embeds SQL migration files for the SQLite store.
package migrations

import "embed"

// FS contains the media and tag schema migrations.
//
//go:embed *.sql
var FS embed.FS
