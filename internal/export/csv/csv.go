package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/tubeguard/tubeguard/internal/export/types"
)

// FileName is the csv output file.
const FileName = "flagged_comments.csv"

// Header is the first row of the csv file.
var Header = []string{"author_hash", "video_id", "category", "reason", "origin", "confidence"}

// Exporter handles exporting records to a csv file.
type Exporter struct {
	outDir string
}

// New creates a new csv exporter instance.
func New(outDir string) *Exporter {
	return &Exporter{outDir: outDir}
}

// Export writes the records to FileName, replacing an existing file.
func (e *Exporter) Export(records []*types.ExportRecord) error {
	file, err := os.Create(filepath.Join(e.outDir, FileName))
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, record := range records {
		if err := writer.Write([]string{
			record.AuthorHash,
			record.VideoID,
			record.Category,
			record.Reason,
			record.Origin,
			strconv.FormatFloat(record.Confidence, 'f', 2, 64),
		}); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}

	return nil
}
