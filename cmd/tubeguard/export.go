package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tubeguard/tubeguard/internal/database/types/enum"
	"github.com/tubeguard/tubeguard/internal/export"
	"github.com/tubeguard/tubeguard/internal/setup"
	"github.com/tubeguard/tubeguard/internal/setup/telemetry"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export flagged comments with hashed author ids to csv, sqlite and binary files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   "exports",
				Usage:   "Base output directory; each run writes a timestamped subdirectory",
			},
			&cli.StringFlag{
				Name:    "salt",
				Aliases: []string{"s"},
				Usage:   "Salt for hashing author ids (prompted when empty)",
			},
			&cli.StringFlag{
				Name:    "hash-type",
				Aliases: []string{"t"},
				Value:   string(export.HashTypeSHA256),
				Usage:   "Hash algorithm to use (argon2id or sha256)",
			},
			&cli.UintFlag{
				Name:    "iterations",
				Aliases: []string{"i"},
				Value:   1,
				Usage:   "Number of hash iterations",
			},
			&cli.UintFlag{
				Name:    "memory",
				Aliases: []string{"m"},
				Value:   64,
				Usage:   "Memory to use for Argon2id in MB",
			},
			&cli.IntFlag{
				Name:    "concurrency",
				Aliases: []string{"c"},
				Value:   4,
				Usage:   "Number of concurrent hash operations",
			},
			&cli.StringSliceFlag{
				Name:  "format",
				Usage: "Formats to write (sqlite, binary, csv); all when omitted",
			},
			&cli.StringSliceFlag{
				Name:  "category",
				Usage: "Categories to export (risky, spam, normal); risky and spam when omitted",
			},
			&cli.StringFlag{
				Name:  "export-version",
				Value: "1.0.0",
				Usage: "Version recorded in the export config",
			},
			&cli.StringFlag{
				Name:  "description",
				Value: "TubeGuard flagged comments",
				Usage: "Description recorded in the export config",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			config, err := exportConfig(c)
			if err != nil {
				return err
			}

			formats := make([]export.Format, 0, len(c.StringSlice("format")))
			for _, format := range c.StringSlice("format") {
				formats = append(formats, export.Format(strings.ToLower(strings.TrimSpace(format))))
			}

			app, err := setup.InitializeApp(ctx, telemetry.ServiceCLI, CLILogDir)
			if err != nil {
				return err
			}
			defer app.Cleanup(context.Background())

			timestamp := time.Now().UTC().Format("2006-01-02_150405")
			outDir := filepath.Join(c.String("output"), timestamp)

			exporter := export.New(app.DB.Model().Analysis(), outDir, config, formats, os.Stderr, app.Logger)

			count, err := exporter.Run(ctx)
			if err != nil {
				return fmt.Errorf("failed to export data: %w", err)
			}

			app.Logger.Info("Export completed", zap.Int("records", count), zap.String("out_dir", outDir))
			fmt.Printf("Exported %d flagged comments to %s\n", count, outDir)

			return nil
		},
	}
}

// exportConfig builds the export configuration from flags, prompting for the salt when missing.
func exportConfig(c *cli.Command) (*export.Config, error) {
	config := &export.Config{
		ExportVersion: c.String("export-version"),
		Description:   c.String("description"),
		Salt:          c.String("salt"),
		HashType:      export.HashType(c.String("hash-type")),
		Iterations:    uint32(c.Uint("iterations")), //nolint:gosec // -
		Memory:        uint32(c.Uint("memory")),     //nolint:gosec // -
		Concurrency:   int(c.Int("concurrency")),
	}

	for _, name := range c.StringSlice("category") {
		category, ok := enum.ParseCommentCategory(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", enum.ErrInvalidCommentCategory, name)
		}
		config.Categories = append(config.Categories, category)
	}

	if config.Salt == "" {
		fmt.Print("Enter salt for hashing author ids: ")

		salt, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("failed to read salt: %w", err)
		}
		config.Salt = strings.TrimSpace(salt)
	}

	return config, nil
}
