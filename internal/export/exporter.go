package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	dbTypes "github.com/tubeguard/tubeguard/internal/database/types"
	"github.com/tubeguard/tubeguard/internal/database/types/enum"
	"github.com/tubeguard/tubeguard/internal/export/binary"
	"github.com/tubeguard/tubeguard/internal/export/csv"
	"github.com/tubeguard/tubeguard/internal/export/sqlite"
	"github.com/tubeguard/tubeguard/internal/export/types"
	"github.com/tubeguard/tubeguard/internal/progress"
	"go.uber.org/zap"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrInvalidHashType   = errors.New("invalid hash type")
	ErrMissingSalt       = errors.New("salt is required")
)

// Format represents a supported export format.
type Format string

const (
	FormatSQLite Format = "sqlite"
	FormatBinary Format = "binary"
	FormatCSV    Format = "csv"
)

// EngineVersion is bumped on breaking changes to any export format.
const EngineVersion = "1.0.0"

// ConfigFileName is written next to the exported files.
const ConfigFileName = "export_config.json"

// AllFormats lists every supported format.
func AllFormats() []Format {
	return []Format{FormatSQLite, FormatBinary, FormatCSV}
}

// Config holds the configuration for exports.
type Config struct {
	ExportVersion string                 `json:"exportVersion"`
	Description   string                 `json:"description"`
	Salt          string                 `json:"salt"`
	HashType      HashType               `json:"hashType"`
	Iterations    uint32                 `json:"iterations"`
	Memory        uint32                 `json:"memory,omitempty"`
	Categories    []enum.CommentCategory `json:"categories"`
	Concurrency   int                    `json:"-"`
}

// Validate checks the hashing parameters and fills defaults.
func (c *Config) Validate() error {
	if !c.HashType.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidHashType, c.HashType)
	}
	if c.Salt == "" {
		return ErrMissingSalt
	}
	if c.Iterations == 0 {
		c.Iterations = 1
	}
	if c.HashType == HashTypeArgon2id && c.Memory == 0 {
		c.Memory = 64
	}
	if len(c.Categories) == 0 {
		c.Categories = []enum.CommentCategory{enum.CommentCategoryRisky, enum.CommentCategorySpam}
	}

	return nil
}

// FlaggedSource lists stored comments to export.
type FlaggedSource interface {
	GetFlaggedComments(ctx context.Context, categories []enum.CommentCategory) ([]*dbTypes.FlaggedComment, error)
}

// Exporter writes flagged comments to files with hashed author ids.
type Exporter struct {
	source   FlaggedSource
	outDir   string
	config   *Config
	formats  []Format
	progress io.Writer
	logger   *zap.Logger
}

// New creates a new exporter instance. A nil progress writer disables the progress bar.
func New(
	source FlaggedSource, outDir string, config *Config, formats []Format, progressOut io.Writer, logger *zap.Logger,
) *Exporter {
	if len(formats) == 0 {
		formats = AllFormats()
	}

	return &Exporter{
		source:   source,
		outDir:   outDir,
		config:   config,
		formats:  formats,
		progress: progressOut,
		logger:   logger.Named("export"),
	}
}

// Run fetches flagged comments, hashes their authors and writes every format.
// It returns the number of exported records.
func (e *Exporter) Run(ctx context.Context) (int, error) {
	if err := e.config.Validate(); err != nil {
		return 0, err
	}

	for _, format := range e.formats {
		if _, err := writerFor(format, e.outDir); err != nil {
			return 0, err
		}
	}

	if err := os.MkdirAll(e.outDir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	comments, err := e.source.GetFlaggedComments(ctx, e.config.Categories)
	if err != nil {
		return 0, err
	}

	e.logger.Info("Exporting flagged comments",
		zap.Int("count", len(comments)),
		zap.String("hash_type", string(e.config.HashType)),
		zap.String("out_dir", e.outDir))

	records, err := e.buildRecords(ctx, comments)
	if err != nil {
		return 0, fmt.Errorf("failed to hash author ids: %w", err)
	}

	if err := e.writeConfig(); err != nil {
		return 0, err
	}

	for _, format := range e.formats {
		writer, _ := writerFor(format, e.outDir)
		if err := writer.Export(records); err != nil {
			return 0, fmt.Errorf("failed to export %s format: %w", format, err)
		}
		e.logger.Debug("Wrote export format", zap.String("format", string(format)))
	}

	return len(records), nil
}

// buildRecords converts comments to export records, hashing author ids concurrently.
func (e *Exporter) buildRecords(ctx context.Context, comments []*dbTypes.FlaggedComment) ([]*types.ExportRecord, error) {
	ids := make([]string, len(comments))
	for i, comment := range comments {
		ids[i] = comment.AuthorID
	}

	var bar *progress.Bar
	if e.progress != nil && len(ids) > 0 {
		bar = progress.NewBar(int64(countDistinct(ids)), 40, "Hashing authors")

		renderCtx, stop := context.WithCancel(ctx)
		done := make(chan struct{})
		go func() {
			progress.NewRenderer(e.progress, bar).Run(renderCtx)
			close(done)
		}()
		defer func() {
			stop()
			<-done
		}()
	}

	hashes, err := hashIDs(ctx, ids, e.config, bar)
	if err != nil {
		return nil, err
	}

	records := make([]*types.ExportRecord, len(comments))
	for i, comment := range comments {
		records[i] = &types.ExportRecord{
			AuthorHash: hashes[i],
			VideoID:    comment.VideoID,
			Category:   comment.Category.String(),
			Reason:     comment.Reason,
			Origin:     comment.Origin,
			Confidence: comment.Confidence,
		}
	}

	return records, nil
}

// writeConfig stores the hashing parameters so consumers can hash ids the same way.
func (e *Exporter) writeConfig() error {
	jsonConfig := struct {
		*Config

		EngineVersion string `json:"engineVersion"`
	}{
		Config:        e.config,
		EngineVersion: EngineVersion,
	}

	data, err := sonic.ConfigStd.MarshalIndent(jsonConfig, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal export config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(e.outDir, ConfigFileName), data, 0o600); err != nil {
		return fmt.Errorf("failed to write export config: %w", err)
	}

	return nil
}

type recordWriter interface {
	Export(records []*types.ExportRecord) error
}

func writerFor(format Format, outDir string) (recordWriter, error) {
	switch format {
	case FormatSQLite:
		return sqlite.New(outDir), nil
	case FormatBinary:
		return binary.New(outDir), nil
	case FormatCSV:
		return csv.New(outDir), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func countDistinct(ids []string) int {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	return len(seen)
}
