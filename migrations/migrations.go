// Package migrations embeds the SQL schema migrations shipped with the binary.
package migrations

import (
	"embed"
	"io/fs"
)

// FS holds the migration files, one sub-directory per database driver.
//
//go:embed sqlite/*.sql
var FS embed.FS

// SQLite returns the sqlite scripts rooted at their directory.
func SQLite() fs.FS {
	sub, err := fs.Sub(FS, "sqlite")
	if err != nil {
		panic(err)
	}
	return sub
}
