package migrations

import "embed"

// FS holds the SQLite migrations for calculator storage.
//
//go:embed *.sql
var FS embed.FS
