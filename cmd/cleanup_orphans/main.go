package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"docrag-be/internal/config"
	"docrag-be/internal/pkg/logger"
	"docrag-be/pkg/backend"
	"docrag-be/pkg/reconcile"

	"github.com/fatih/color"
)

const (
	exitOK      = 0
	exitFailed  = 1
	exitUsage   = 2
	waitDefault = 5 * time.Minute
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run returns the process exit code so deferred flushes happen before exit.
func run(args []string) int {
	fs := flag.NewFlagSet("cleanup_orphans", flag.ContinueOnError)
	token := fs.String("token", os.Getenv("BACKEND_TOKEN"), "bearer token of the user whose sessions are swept")
	pageSize := fs.Int("page-size", reconcile.DefaultSweepPageSize, "sessions fetched per page")
	timeout := fs.Duration("timeout", waitDefault, "maximum time to wait for deletions")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	if *token == "" {
		color.Red("A token is required (-token or BACKEND_TOKEN)")
		return exitUsage
	}

	cfg := config.Load()
	cleanupLogger := logger.NewIsolatedLogger(cfg.App.CleanupLogFilePath)
	defer cleanupLogger.Sync()

	client := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout)
	reconciler := reconcile.New(client, reconcile.NewAsyncCleaner(client, cleanupLogger),
		reconcile.WithLogger(cleanupLogger),
	)

	ctx, cancel := context.WithTimeout(backend.WithAuthToken(context.Background(), *token), *timeout)
	defer cancel()

	color.Cyan("Sweeping chat sessions at %s", cfg.Backend.BaseURL)

	job, err := reconciler.Sweep(ctx, *pageSize)
	if err != nil {
		color.Red("Sweep failed: %v", err)
		return exitFailed
	}

	report, err := job.Wait(ctx)
	if err != nil {
		color.Yellow("Stopped waiting: %v", err)
	}

	if report.Total == 0 {
		color.Green("No orphaned sessions found")
		return exitOK
	}

	color.Green("Deleted %d of %d orphaned sessions", len(report.Deleted), report.Total)
	for _, id := range report.Deleted {
		fmt.Printf("  - %s\n", id)
	}
	if len(report.Failed) > 0 {
		color.Red("%d deletions failed:", len(report.Failed))
		for _, f := range report.Failed {
			fmt.Printf("  - %s: %s\n", f.SessionID, f.Error)
		}
		return exitFailed
	}
	if !report.Done {
		return exitFailed
	}
	return exitOK
}
