//go:build cgo_sqlite

// CGO SQLite driver using mattn/go-sqlite3.
// Build with: CGO_ENABLED=1 go build -tags cgo_sqlite
//
// The driver registration lives in contrib/sqlite-external to keep the
// optional external dependency separate from the default build.
package catalog

import (
	_ "github.com/pngstash/pngstash/contrib/sqlite-external" // CGO SQLite driver
)

const driverName = "sqlite3"
