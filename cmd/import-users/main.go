package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sirupsen/logrus"

	"users-api/internal/config"
	"users-api/internal/importer"
	"users-api/internal/telemetry"
	"users-api/pkg/server"
)

// Seeds the configured user store (STORE_BACKEND) from a JSON export
func main() {
	var (
		filePath = flag.String("file", "./data/users.json", "JSON file holding an array of users")
		action   = flag.String("action", "import", "Action: check, import")
		verbose  = flag.Bool("verbose", false, "Enable verbose logging")
		dryRun   = flag.Bool("dry-run", false, "Validate records without writing them")
		verify   = flag.Bool("verify", true, "Read imported users back after the import")
	)
	flag.Parse()

	logger := logrus.New()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	absPath, err := filepath.Abs(*filePath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to get absolute file path")
	}

	logger.WithFields(logrus.Fields{
		"file":    absPath,
		"action":  *action,
		"dry_run": *dryRun,
	}).Info("Starting user import tool")

	records, err := importer.LoadFile(absPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load users")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch *action {
	case "check":
		fmt.Printf("Found %d users in %s\n", len(records), absPath)
	case "import":
		if err := runImport(ctx, records, logger, *dryRun, *verify); err != nil {
			logger.WithError(err).Fatal("Import failed")
		}
	default:
		logger.WithField("action", *action).Fatal("Unknown action. Use: check, import")
	}

	logger.Info("User import tool completed successfully")
}

func runImport(ctx context.Context, records []importer.JSONUser, logger *logrus.Logger, dryRun, verify bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	repo, err := server.NewUserRepository(ctx, cfg, logger, telemetry.New(cfg.Telemetry))
	if err != nil {
		return err
	}
	defer repo.Close()

	imp := importer.NewImporter(repo, logger, importer.DefaultRetryConfig())
	result, err := imp.Import(ctx, records, dryRun)
	if err != nil {
		return err
	}

	fmt.Printf("\n=== Import Results ===\n")
	fmt.Printf("Backend: %s\n", repo.Backend())
	fmt.Printf("Users processed: %d\n", result.Processed)
	fmt.Printf("Users imported: %d\n", result.Imported)
	fmt.Printf("IDs generated: %d\n", result.Generated)

	if len(result.Warnings) > 0 {
		fmt.Printf("\nWarnings (%d):\n", len(result.Warnings))
		for _, warning := range result.Warnings {
			fmt.Printf("  ⚠ %s\n", warning)
		}
	}

	if len(result.Errors) > 0 {
		fmt.Printf("\nErrors (%d):\n", len(result.Errors))
		for _, errMsg := range result.Errors {
			fmt.Printf("  ✗ %s\n", errMsg)
		}
		return fmt.Errorf("import completed with %d errors", len(result.Errors))
	}

	if dryRun || !verify {
		return nil
	}

	missing, err := imp.Verify(ctx, result.IDs)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("%d imported users could not be read back", len(missing))
	}

	fmt.Printf("\n✅ Import completed and verified\n")
	return nil
}
