package sqlite

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tubeguard/tubeguard/internal/export/types"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const (
	// FileName is the SQLite output file.
	FileName = "flagged_comments.db"
	// TableName holds one row per exported record.
	TableName = "flagged_comments"

	batchSize = 1000
)

// Exporter handles exporting records to a SQLite database.
type Exporter struct {
	outDir string
}

// New creates a new SQLite exporter instance.
func New(outDir string) *Exporter {
	return &Exporter{outDir: outDir}
}

// Export writes the records to FileName, replacing an existing database.
func (e *Exporter) Export(records []*types.ExportRecord) error {
	path := filepath.Join(e.outDir, FileName)
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove existing file %s: %w", FileName, err)
	}

	conn, err := sqlite.OpenConn(path, sqlite.OpenCreate|sqlite.OpenReadWrite)
	if err != nil {
		return fmt.Errorf("failed to open SQLite database: %w", err)
	}
	defer conn.Close()

	err = sqlitex.ExecuteScript(conn, `
		CREATE TABLE `+TableName+` (
			id INTEGER PRIMARY KEY,
			author_hash TEXT NOT NULL,
			video_id TEXT NOT NULL,
			category TEXT NOT NULL,
			reason TEXT NOT NULL,
			origin TEXT NOT NULL,
			confidence REAL NOT NULL
		);
		CREATE INDEX idx_`+TableName+`_author_hash ON `+TableName+` (author_hash);
	`, nil)
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	query := "INSERT INTO " + TableName +
		" (author_hash, video_id, category, reason, origin, confidence) VALUES (?, ?, ?, ?, ?, ?)"

	for i := 0; i < len(records); i += batchSize {
		end := min(i+batchSize, len(records))
		if err := insertBatch(conn, query, records[i:end]); err != nil {
			return err
		}
	}

	return nil
}

// insertBatch inserts records inside a single transaction.
func insertBatch(conn *sqlite.Conn, query string, records []*types.ExportRecord) (err error) {
	defer sqlitex.Save(conn)(&err)

	for _, record := range records {
		err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{
				record.AuthorHash, record.VideoID, record.Category,
				record.Reason, record.Origin, record.Confidence,
			},
		})
		if err != nil {
			return fmt.Errorf("failed to insert record: %w", err)
		}
	}

	return nil
}
