package binary_test

import (
	"encoding/binary"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	exportBinary "github.com/tubeguard/tubeguard/internal/export/binary"
	"github.com/tubeguard/tubeguard/internal/export/types"
)

const hashLen = 32

func readString(t *testing.T, r io.Reader) string {
	t.Helper()

	var length uint16
	require.NoError(t, binary.Read(r, binary.LittleEndian, &length))

	data := make([]byte, length)
	_, err := io.ReadFull(r, data)
	require.NoError(t, err)

	return string(data)
}

// readRecords decodes a binary export file.
func readRecords(t *testing.T, path string) []*types.ExportRecord {
	t.Helper()

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	var count uint32
	require.NoError(t, binary.Read(file, binary.LittleEndian, &count))

	records := make([]*types.ExportRecord, 0, count)
	for range count {
		hash := make([]byte, hashLen)
		_, err := io.ReadFull(file, hash)
		require.NoError(t, err)

		record := &types.ExportRecord{AuthorHash: hex.EncodeToString(hash)}
		record.VideoID = readString(t, file)
		record.Category = readString(t, file)
		record.Reason = readString(t, file)
		record.Origin = readString(t, file)
		require.NoError(t, binary.Read(file, binary.LittleEndian, &record.Confidence))

		records = append(records, record)
	}

	_, err = file.Read(make([]byte, 1))
	assert.Equal(t, io.EOF, err, "expected EOF after last record")

	return records
}

func TestExporter_Export(t *testing.T) {
	t.Parallel()

	hashA := strings.Repeat("ab", hashLen)
	hashB := strings.Repeat("cd", hashLen)

	tests := []struct {
		name    string
		records []*types.ExportRecord
	}{
		{
			name: "basic export",
			records: []*types.ExportRecord{
				{AuthorHash: hashA, VideoID: "dQw4w9WgXcQ", Category: "risky", Reason: "profanity", Origin: "local", Confidence: 0.9},
				{AuthorHash: hashB, VideoID: "dQw4w9WgXcQ", Category: "spam", Reason: "프로모션 링크", Origin: "remote", Confidence: 0.8},
			},
		},
		{
			name:    "empty records",
			records: []*types.ExportRecord{},
		},
		{
			name: "empty strings",
			records: []*types.ExportRecord{
				{AuthorHash: hashA, VideoID: "v", Category: "risky", Origin: "fallback", Confidence: 0.5},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			require.NoError(t, exportBinary.New(dir).Export(tt.records))
			assert.Equal(t, tt.records, readRecords(t, filepath.Join(dir, exportBinary.FileName)))
		})
	}
}

func TestExporter_InvalidHash(t *testing.T) {
	t.Parallel()

	err := exportBinary.New(t.TempDir()).Export([]*types.ExportRecord{{AuthorHash: "not-hex"}})
	assert.Error(t, err)
}

func TestExporter_TruncatesLongStrings(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	long := strings.Repeat("x", 70000)
	err := exportBinary.New(dir).Export([]*types.ExportRecord{
		{AuthorHash: strings.Repeat("00", hashLen), VideoID: "v", Category: "risky", Reason: long, Origin: "remote"},
	})
	require.NoError(t, err)

	records := readRecords(t, filepath.Join(dir, exportBinary.FileName))
	require.Len(t, records, 1)
	assert.Len(t, records[0].Reason, 65535)
}
