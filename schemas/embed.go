// Package schemas provides embedded SQL migration files for the MySQL store.
package schemas

import "embed"

// Migrations contains the SQL migration files, applied in file name order.
//
//go:embed migrations/*.sql
var Migrations embed.FS
