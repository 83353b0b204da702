// Package main implements a command that loads flashcards from an Excel
// workbook or CSV file into the practice database. Every imported card
// starts in bucket 0; cards that already exist are skipped.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/leitner/internal/config"
	"github.com/phrazzld/leitner/internal/importer"
	"github.com/phrazzld/leitner/internal/platform/database"
	"github.com/phrazzld/leitner/internal/platform/logger"
	"github.com/phrazzld/leitner/internal/platform/sqlstore"
	"github.com/phrazzld/leitner/internal/service"
	"github.com/spf13/pflag"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "importcards: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	flags := pflag.NewFlagSet("importcards", pflag.ContinueOnError)
	config.RegisterFlags(flags)

	layout := importer.DefaultConfig("")
	flags.StringVar(&layout.FilePath, "file", "", "workbook (.xlsx) or .csv file to import (required)")
	flags.StringVar(&layout.SheetName, "sheet", "", "worksheet name (default first sheet)")
	flags.StringVar(&layout.FrontColumn, "front-column", layout.FrontColumn, "column holding the card front")
	flags.StringVar(&layout.BackColumn, "back-column", layout.BackColumn, "column holding the card back")
	flags.StringVar(&layout.HintColumn, "hint-column", layout.HintColumn, "column holding the hint; empty disables")
	flags.StringVar(&layout.TagsColumn, "tags-column", layout.TagsColumn, "column holding tags; empty disables")
	flags.IntVar(&layout.StartRow, "start-row", layout.StartRow, "first data row, 1-based")
	flags.StringVar(&layout.TagSeparator, "tag-separator", layout.TagSeparator, "separator inside the tags cell")
	dryRun := flags.Bool("dry-run", false, "read and report without writing to the database")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if layout.FilePath == "" {
		return errors.New("--file is required")
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	sheet, err := importer.Read(layout)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", layout.FilePath, err)
	}
	for _, rowErr := range sheet.Errors {
		fmt.Fprintf(out, "skipped %v\n", rowErr)
	}
	if len(sheet.Rows) == 0 {
		return importer.ErrNoRows
	}

	inputs := make([]service.CardInput, len(sheet.Rows))
	for i, row := range sheet.Rows {
		inputs[i] = service.CardInput{Front: row.Front, Back: row.Back, Hint: row.Hint, Tags: row.Tags}
	}

	if *dryRun {
		fmt.Fprintf(out, "read %d cards from %s (dry run)\n", len(inputs), layout.FilePath)
		return nil
	}

	db, err := database.Open(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}()

	if err := database.Migrate(ctx, db, "up", log); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	cards, err := service.NewCardService(db, sqlstore.NewCardStore(db, log), sqlstore.NewBucketStore(db, log), log)
	if err != nil {
		return err
	}

	result, err := cards.ImportCards(ctx, inputs)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	for _, e := range result.Errors {
		// Indexes refer to the rows that were read, not to sheet lines.
		fmt.Fprintf(out, "rejected row %d (%q): %s\n", sheet.Rows[e.Index].Line, e.Front, e.Reason)
	}
	fmt.Fprintf(out, "imported %d cards, skipped %d existing, rejected %d\n",
		result.Created, result.Skipped, len(result.Errors)+len(sheet.Errors))
	return nil
}
