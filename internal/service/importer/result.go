package importer

import "github.com/tunelog/tunelog-backend/internal/domain"

// IngestStatus classifies an ingest outcome for the hosting layer.
type IngestStatus string

const (
	// IngestStatusOK means at least one play survived the pipeline.
	IngestStatusOK IngestStatus = "ok"

	// IngestStatusEmpty means the files parsed fine but nothing survived:
	// no events, all rejected, or all already present.
	IngestStatusEmpty IngestStatus = "empty"

	// IngestStatusParseFailed means at least one export file could not be
	// fetched or decoded. No plays are staged.
	IngestStatusParseFailed IngestStatus = "parse_failed"
)

// IngestResult is the staged outcome of an Ingest call. Plays are not yet
// persisted; pass them to Commit.
type IngestResult struct {
	Status IngestStatus

	// Plays are the normalized, deduplicated plays ready to commit.
	Plays []domain.Play

	// Accepted counts events that passed the validity check, before
	// deduplication.
	Accepted int

	// Rejected counts events the validity check turned down. Events
	// missing artist or track are dropped silently and not counted.
	Rejected int

	// FailureReason is set only for IngestStatusParseFailed.
	FailureReason string
}
