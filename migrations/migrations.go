// Package migrations embeds the SQL migration files for the portfolio schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
