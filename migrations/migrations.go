package migrations

import "embed"

// FS : SQL миграции goose, встроенные в бинарник
//
//go:embed *.sql
var FS embed.FS
