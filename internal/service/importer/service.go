// Package importer orchestrates listening-history imports: parsing export
// files, validating and normalizing events, deduplicating against existing
// history, and committing the surviving plays.
package importer

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tunelog/tunelog-backend/internal/config"
	"github.com/tunelog/tunelog-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type exportParser interface {
	ParseFiles(ctx context.Context, attachments []domain.Attachment) ([]domain.RawPlayEvent, error)
}

type playValidator interface {
	IsValidPlay(ctx context.Context, artist, track string, msPlayed int64) (bool, error)
}

type playRepo interface {
	GetByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Play, error)
	BulkInsert(ctx context.Context, plays []domain.Play) (int, error)
	DeleteImported(ctx context.Context, userID uuid.UUID) (int64, error)
	SetDefaultSource(ctx context.Context, userID uuid.UUID, source domain.PlaySource) (int64, error)
	HasImported(ctx context.Context, userID uuid.UUID) (bool, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the import business logic. Ingest stages plays in
// memory; nothing touches the store until Commit.
type Service struct {
	log       *slog.Logger
	parser    exportParser
	validator playValidator
	plays     playRepo
	cfg       config.ImportConfig
}

// NewService creates a new import service.
func NewService(
	logger *slog.Logger,
	parser exportParser,
	validator playValidator,
	plays playRepo,
	cfg config.ImportConfig,
) *Service {
	return &Service{
		log:       logger.With("service", "importer"),
		parser:    parser,
		validator: validator,
		plays:     plays,
		cfg:       cfg,
	}
}
