package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/tubeguard/tubeguard/internal/rest/convert"
	"github.com/tubeguard/tubeguard/internal/setup"
	"github.com/tubeguard/tubeguard/internal/setup/telemetry"
	"github.com/urfave/cli/v3"
)

var (
	ErrURLRequired  = errors.New("URL argument required")
	ErrTextRequired = errors.New("TEXT argument required")
)

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Analyze the comments of a YouTube video and print the result as JSON",
		ArgsUsage: "URL",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "max",
				Usage: "Maximum number of comments to analyze (0 = configured default)",
				Value: 0,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return ErrURLRequired
			}

			app, err := setup.InitializeApp(ctx, telemetry.ServiceCLI, CLILogDir)
			if err != nil {
				return err
			}
			defer app.Cleanup(context.Background())

			analysis, err := app.Analyzer.AnalyzeVideo(ctx, c.Args().First(), int(c.Int("max")))
			if err != nil {
				return err
			}

			return printJSON(convert.Analysis(analysis))
		},
	}
}

func classifyCommand() *cli.Command {
	return &cli.Command{
		Name:      "classify",
		Usage:     "Classify a single comment text",
		ArgsUsage: "TEXT",
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return ErrTextRequired
			}

			app, err := setup.InitializeApp(ctx, telemetry.ServiceCLI, CLILogDir)
			if err != nil {
				return err
			}
			defer app.Cleanup(context.Background())

			result := app.Checker.ClassifyText(ctx, c.Args().First())

			return printJSON(map[string]any{
				"category":   convert.Category(result.Category),
				"label":      result.Category.Label(),
				"reason":     result.Reason,
				"origin":     result.Origin.String(),
				"confidence": result.Confidence,
			})
		},
	}
}

func printJSON(v any) error {
	data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	_, err = fmt.Fprintln(os.Stdout, string(data))
	return err
}
