package binary

import (
	"bufio"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/tubeguard/tubeguard/internal/export/types"
)

// FileName is the binary output file.
const FileName = "flagged_comments.bin"

// Exporter handles exporting records to a compact binary file.
//
// Layout (little endian): uint32 record count, then per record the raw author
// hash bytes followed by length-prefixed (uint16) video id, category, reason
// and origin strings, and a float64 confidence.
type Exporter struct {
	outDir string
}

// New creates a new binary exporter instance.
func New(outDir string) *Exporter {
	return &Exporter{outDir: outDir}
}

// Export writes the records to FileName, replacing an existing file.
func (e *Exporter) Export(records []*types.ExportRecord) error {
	file, err := os.Create(filepath.Join(e.outDir, FileName))
	if err != nil {
		return fmt.Errorf("failed to create binary file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)

	count := uint32(len(records)) //nolint:gosec // unlikely to overflow
	if err := binary.Write(w, binary.LittleEndian, count); err != nil {
		return fmt.Errorf("failed to write record count: %w", err)
	}

	for _, record := range records {
		hashBytes, err := hex.DecodeString(record.AuthorHash)
		if err != nil {
			return fmt.Errorf("failed to decode hash: %w", err)
		}

		if _, err := w.Write(hashBytes); err != nil {
			return fmt.Errorf("failed to write hash: %w", err)
		}

		for _, field := range []string{record.VideoID, record.Category, record.Reason, record.Origin} {
			if err := writeString(w, field); err != nil {
				return err
			}
		}

		if err := binary.Write(w, binary.LittleEndian, record.Confidence); err != nil {
			return fmt.Errorf("failed to write confidence: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush binary file: %w", err)
	}

	return nil
}

func writeString(w *bufio.Writer, s string) error {
	data := []byte(s)
	if len(data) > math.MaxUint16 {
		data = data[:math.MaxUint16]
	}

	length := uint16(len(data)) //nolint:gosec // clamped above
	if err := binary.Write(w, binary.LittleEndian, length); err != nil {
		return fmt.Errorf("failed to write string length: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write string: %w", err)
	}

	return nil
}
