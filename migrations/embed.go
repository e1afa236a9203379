// Package migrations embeds the goose SQL migrations so a single binary can
// bring a fresh database up to date.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
