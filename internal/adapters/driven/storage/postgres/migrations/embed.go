// Package migrations embeds the Postgres schema migrations.
package migrations

import "embed"

// FS contains the media and tag schema migrations.
//
//go:embed *.sql
var FS embed.FS
