// Package migrations embeds the goose SQL migration files applied at
// store startup.
package migrations

import "embed"

// FS holds the embedded migration files.
//
//go:embed *.sql
var FS embed.FS
