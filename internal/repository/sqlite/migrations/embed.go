// Package migrations holds the SQLite schema as ordered SQL files and applies
// the ones a database has not seen yet.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
