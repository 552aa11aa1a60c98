// Package sqliteexternal provides an optional CGO-based SQLite driver.
//
// By default the chunk catalog uses the pure Go modernc.org/sqlite driver,
// which keeps the binary portable and cross-compilable. When CGO is
// available and performance matters, the mattn/go-sqlite3 driver can be
// selected instead:
//
//	import _ "github.com/pngstash/pngstash/contrib/sqlite-external"
//
// Build with:
//
//	CGO_ENABLED=1 go build -tags cgo_sqlite
//
// The import lives in this package, rather than internal/catalog, to keep
// the optional external dependency clearly separated from the default
// build.
package sqliteexternal
