// Package migrations содержит SQL схему журнала заявок для goose.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
