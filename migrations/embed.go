package migrations

import "embed"

// Files holds the versioned schema and catalog seed scripts compiled into
// the wizards binary. internal/db applies them in version order on startup.
//
//go:embed *.sql
var Files embed.FS
