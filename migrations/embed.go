// Package migrations содержит SQL миграции схемы, встраиваемые в бинарь
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
