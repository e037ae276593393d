package migrations

import "embed"

// FS holds the schema files for each backend under sqlite/ and postgres/.
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
