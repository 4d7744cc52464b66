// Package migrations embeds the SQL schema files and registers them with the
// database package so the in-memory store can be built at startup.
package migrations

import (
	"embed"

	"github.com/radiusdc/portal-core/internal/infrastructure/database"
)

//go:embed *.sql
var files embed.FS

func init() {
	database.MigrationsFS = files
	database.MigrationsDir = "."
}
