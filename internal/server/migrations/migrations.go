// Package migrations embeds the goose SQL migrations for the accounts
// schema. Running them is idempotent and happens on every startup.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
