package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"
)

// Log directories per command.
const (
	RESTLogDir    = "logs/rest_logs"
	CLILogDir     = "logs/cli_logs"
	MigrateLogDir = "logs/migrate_logs"
)

func main() {
	app := &cli.Command{
		Name:  "tubeguard",
		Usage: "YouTube comment moderation pipeline",
		Commands: []*cli.Command{
			serveCommand(),
			analyzeCommand(),
			batchCommand(),
			exportCommand(),
			classifyCommand(),
			migrateCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}
