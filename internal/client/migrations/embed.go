// Package migrations embeds the goose migrations of the CLI's local session database.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
