package user

import "embed"

// Migrations holds the goose migrations for PostgresRepository, under the
// "migrations" directory.
//
//go:embed migrations/*.sql
var Migrations embed.FS
