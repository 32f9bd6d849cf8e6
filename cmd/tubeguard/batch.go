package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sourcegraph/conc/pool"
	"github.com/tubeguard/tubeguard/internal/progress"
	"github.com/tubeguard/tubeguard/internal/rest/convert"
	restTypes "github.com/tubeguard/tubeguard/internal/rest/types"
	"github.com/tubeguard/tubeguard/internal/setup"
	"github.com/tubeguard/tubeguard/internal/setup/telemetry"
	"github.com/tubeguard/tubeguard/pkg/utils"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

var (
	ErrFileRequired   = errors.New("FILE argument required")
	ErrNoVideoURLs    = errors.New("no video URLs found in file")
	ErrBadConcurrency = errors.New("concurrency must be at least 1")
)

// batchResult is the per-URL line of the batch output.
type batchResult struct {
	URL     string             `json:"url"`
	Video   *restTypes.Video   `json:"video,omitempty"`
	Summary *restTypes.Summary `json:"summary,omitempty"`
	Error   string             `json:"error,omitempty"`
}

func batchCommand() *cli.Command {
	return &cli.Command{
		Name:      "batch",
		Usage:     "Analyze every video URL listed in a file and print per-video summaries as JSON",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "max",
				Usage: "Maximum number of comments to analyze per video (0 = configured default)",
				Value: 0,
			},
			&cli.IntFlag{
				Name:    "concurrency",
				Aliases: []string{"c"},
				Usage:   "Number of videos to analyze in parallel",
				Value:   2,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return ErrFileRequired
			}

			concurrency := int(c.Int("concurrency"))
			if concurrency < 1 {
				return ErrBadConcurrency
			}

			file, err := os.Open(c.Args().First())
			if err != nil {
				return fmt.Errorf("failed to open URL list: %w", err)
			}
			defer file.Close()

			urls, err := readURLList(file)
			if err != nil {
				return err
			}
			if len(urls) == 0 {
				return ErrNoVideoURLs
			}

			app, err := setup.InitializeApp(ctx, telemetry.ServiceCLI, CLILogDir)
			if err != nil {
				return err
			}
			defer app.Cleanup(context.Background())

			bar := progress.NewBar(int64(len(urls)), 40, "Analyzing videos")
			renderCtx, stopRender := context.WithCancel(ctx)
			renderDone := make(chan struct{})
			go func() {
				progress.NewRenderer(os.Stderr, bar).Run(renderCtx)
				close(renderDone)
			}()

			p := pool.NewWithResults[batchResult]().WithContext(ctx).WithMaxGoroutines(concurrency)
			for _, url := range urls {
				p.Go(func(ctx context.Context) (batchResult, error) {
					defer bar.Increment(1)
					bar.SetStepMessage(url)

					result := batchResult{URL: url}
					if !utils.IsYouTubeVideoURL(url) {
						result.Error = utils.ErrInvalidVideoURL.Error()
						return result, nil
					}

					analysis, err := app.Analyzer.AnalyzeVideo(ctx, url, int(c.Int("max")))
					if err != nil {
						app.Logger.Warn("Failed to analyze video",
							zap.String("url", url),
							zap.Error(err))
						result.Error = err.Error()
						return result, nil
					}

					summary := convert.Summary(analysis.Summary)
					result.Video = convert.Video(analysis.Video)
					result.Summary = &summary
					return result, nil
				})
			}

			results, err := p.Wait()
			stopRender()
			<-renderDone
			if err != nil {
				return err
			}

			return printJSON(results)
		},
	}
}

// readURLList returns the non-empty lines of r, skipping '#' comments.
func readURLList(r io.Reader) ([]string, error) {
	var urls []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read URL list: %w", err)
	}

	return urls, nil
}
