// Package database содержит встроенные миграции схемы.
package database

import "embed"

//go:embed migrations/*.sql
var MigrationsFS embed.FS

// MigrationsPath - путь к миграциям внутри MigrationsFS.
const MigrationsPath = "migrations"
