// Package seeder imports message catalogs from JSON dataset files.
// It is run offline by the seeder command, not as part of the server.
package seeder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dailystart/messages-backend/internal/adapter/postgres/message"
	"github.com/dailystart/messages-backend/internal/domain"
)

type messageWriter interface {
	Create(ctx context.Context, m *domain.Message) (*domain.Message, error)
	UpsertCategory(ctx context.Context, c message.CategoryMeta) error
}

type txRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Report summarizes one import run.
type Report struct {
	Categories int
	Messages   int
	DryRun     bool
}

// Importer loads a dataset into the catalog inside a single transaction,
// so a partially imported file never reaches readers.
type Importer struct {
	log      *slog.Logger
	messages messageWriter
	tx       txRunner
	dryRun   bool
}

// NewImporter creates an Importer. With dryRun set, the dataset is only
// validated and counted, nothing is written.
func NewImporter(logger *slog.Logger, messages messageWriter, tx txRunner, dryRun bool) *Importer {
	return &Importer{
		log:      logger.With("component", "seeder"),
		messages: messages,
		tx:       tx,
		dryRun:   dryRun,
	}
}

// Run validates and imports the dataset.
func (im *Importer) Run(ctx context.Context, ds *Dataset) (Report, error) {
	if err := ds.Validate(); err != nil {
		return Report{}, err
	}

	report := Report{
		Categories: len(ds.Categories),
		Messages:   len(ds.Messages),
		DryRun:     im.dryRun,
	}

	if im.dryRun {
		im.log.InfoContext(ctx, "dry run, skipping writes",
			slog.Int("categories", report.Categories),
			slog.Int("messages", report.Messages),
		)
		return report, nil
	}

	err := im.tx.RunInTx(ctx, func(ctx context.Context) error {
		for _, c := range ds.Categories {
			meta := message.CategoryMeta{
				Name:        c.Name,
				Description: c.Description,
				Color:       c.Color,
				Icon:        c.Icon,
				SortOrder:   c.SortOrder,
			}
			if err := im.messages.UpsertCategory(ctx, meta); err != nil {
				return fmt.Errorf("upsert category %q: %w", c.Name, err)
			}
		}

		for i, entry := range ds.Messages {
			if _, err := im.messages.Create(ctx, entry.toDomain()); err != nil {
				return fmt.Errorf("insert message %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return Report{}, err
	}

	im.log.InfoContext(ctx, "import completed",
		slog.Int("categories", report.Categories),
		slog.Int("messages", report.Messages),
	)
	return report, nil
}
