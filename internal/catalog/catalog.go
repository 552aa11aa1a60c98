// Package catalog records chunk inventories of scanned PNG files in a
// SQLite database. Each scan gets a unique ID; chunk rows keep their file
// order so an inventory can be read back exactly as it was seen.
//
// Build modes:
//   - Default (CGO_ENABLED=0): pure Go modernc.org/sqlite
//   - CGO mode (CGO_ENABLED=1 -tags cgo_sqlite): mattn/go-sqlite3 via
//     contrib/sqlite-external
package catalog

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pngstash/pngstash/core/digest"
	"github.com/pngstash/pngstash/core/errors"
	"github.com/pngstash/pngstash/core/png"
)

const schema = `
CREATE TABLE IF NOT EXISTS scans (
	id          TEXT PRIMARY KEY,
	path        TEXT NOT NULL,
	scanned_at  TEXT NOT NULL,
	chunk_count INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS chunks (
	scan_id        TEXT NOT NULL REFERENCES scans(id),
	idx            INTEGER NOT NULL,
	type           TEXT NOT NULL,
	length         INTEGER NOT NULL,
	crc            INTEGER NOT NULL,
	critical       INTEGER NOT NULL,
	safe_to_copy   INTEGER NOT NULL,
	payload_sha256 TEXT NOT NULL,
	PRIMARY KEY (scan_id, idx)
);
`

// Catalog is an open chunk-inventory database.
type Catalog struct {
	db *sql.DB
}

// Scan is one recorded inventory of a file.
type Scan struct {
	ID         string
	Path       string
	ScannedAt  time.Time
	ChunkCount int
}

// ChunkRecord is one chunk row of a scan, in file order.
type ChunkRecord struct {
	Index         int
	Type          string
	Length        uint32
	CRC           uint32
	Critical      bool
	SafeToCopy    bool
	PayloadSHA256 string
}

// Open opens (creating if needed) a catalog database at the given path.
func Open(path string) (*Catalog, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize catalog schema: %w", err)
	}
	return &Catalog{db: db}, nil
}

// Close releases the underlying database handle.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// RecordScan stores the chunk inventory of a parsed file and returns the
// new scan's ID. The whole scan is written in one transaction.
func (c *Catalog) RecordScan(path string, p *png.Png) (string, error) {
	scanID := uuid.NewString()
	chunks := p.Chunks()

	tx, err := c.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO scans (id, path, scanned_at, chunk_count) VALUES (?, ?, ?, ?)",
		scanID, path, time.Now().UTC().Format(time.RFC3339), len(chunks),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert scan: %w", err)
	}

	for i, chunk := range chunks {
		typ := chunk.Type()
		_, err = tx.Exec(
			"INSERT INTO chunks (scan_id, idx, type, length, crc, critical, safe_to_copy, payload_sha256) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			scanID, i, typ.String(), chunk.Length(), chunk.CRC(),
			typ.IsCritical(), typ.IsSafeToCopy(), digest.SHA256Hex(chunk.Data()),
		)
		if err != nil {
			return "", fmt.Errorf("failed to insert chunk %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit scan: %w", err)
	}
	return scanID, nil
}

// GetScan returns one scan by ID.
func (c *Catalog) GetScan(id string) (*Scan, error) {
	var s Scan
	var scannedAt string
	err := c.db.QueryRow(
		"SELECT id, path, scanned_at, chunk_count FROM scans WHERE id = ?", id,
	).Scan(&s.ID, &s.Path, &scannedAt, &s.ChunkCount)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound("scan", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read scan: %w", err)
	}
	s.ScannedAt, err = time.Parse(time.RFC3339, scannedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse scan timestamp: %w", err)
	}
	return &s, nil
}

// ListScans returns all scans, most recent first.
func (c *Catalog) ListScans() ([]*Scan, error) {
	rows, err := c.db.Query("SELECT id, path, scanned_at, chunk_count FROM scans ORDER BY scanned_at DESC, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list scans: %w", err)
	}
	defer rows.Close()

	var scans []*Scan
	for rows.Next() {
		var s Scan
		var scannedAt string
		if err := rows.Scan(&s.ID, &s.Path, &scannedAt, &s.ChunkCount); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		s.ScannedAt, err = time.Parse(time.RFC3339, scannedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse scan timestamp: %w", err)
		}
		scans = append(scans, &s)
	}
	return scans, rows.Err()
}

// ChunksForScan returns the chunk rows of one scan in file order.
func (c *Catalog) ChunksForScan(scanID string) ([]*ChunkRecord, error) {
	if _, err := c.GetScan(scanID); err != nil {
		return nil, err
	}

	rows, err := c.db.Query(
		"SELECT idx, type, length, crc, critical, safe_to_copy, payload_sha256 FROM chunks WHERE scan_id = ? ORDER BY idx", scanID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list chunks: %w", err)
	}
	defer rows.Close()

	var records []*ChunkRecord
	for rows.Next() {
		var r ChunkRecord
		if err := rows.Scan(&r.Index, &r.Type, &r.Length, &r.CRC, &r.Critical, &r.SafeToCopy, &r.PayloadSHA256); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		records = append(records, &r)
	}
	return records, rows.Err()
}
