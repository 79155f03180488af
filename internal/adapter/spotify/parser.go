// Package spotify parses Spotify extended streaming history exports handed
// in as URL-addressable attachments.
package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/tunelog/tunelog-backend/internal/domain"
)

// ExportError reports why an export could not be parsed. Any file failing
// fails the whole parse; partial batches are never returned.
type ExportError struct {
	Filename string
	Err      error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("spotify export %q: %v", e.Filename, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// Parser fetches and decodes Spotify export files.
type Parser struct {
	httpClient *http.Client
	log        *slog.Logger
}

// NewParser creates a Parser. The timeout bounds each file fetch.
func NewParser(fetchTimeout time.Duration, logger *slog.Logger) *Parser {
	return &Parser{
		httpClient: &http.Client{Timeout: fetchTimeout},
		log:        logger.With("adapter", "spotify"),
	}
}

// ParseFiles downloads each attachment and decodes its play records.
// Clients re-upload the same file under one filename more than once, so
// attachments are grouped by filename and only the first URL of each group
// is fetched. Attachments without a URL are skipped. Empty input yields
// nil, nil.
func (p *Parser) ParseFiles(ctx context.Context, attachments []domain.Attachment) ([]domain.RawPlayEvent, error) {
	seen := make(map[string]bool, len(attachments))

	var events []domain.RawPlayEvent
	for _, att := range attachments {
		if att.URL == "" || seen[att.Filename] {
			continue
		}
		seen[att.Filename] = true

		records, err := p.fetchFile(ctx, att.URL)
		if err != nil {
			p.log.ErrorContext(ctx, "spotify export fetch failed",
				slog.String("filename", att.Filename),
				slog.String("error", err.Error()),
			)
			return nil, &ExportError{Filename: att.Filename, Err: err}
		}

		p.log.DebugContext(ctx, "spotify export file parsed",
			slog.String("filename", att.Filename),
			slog.Int("records", len(records)),
		)

		for _, rec := range records {
			events = append(events, toRawEvent(rec))
		}
	}

	return events, nil
}

func (p *Parser) fetchFile(ctx context.Context, fileURL string) ([]endSongRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var records []endSongRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}

	return records, nil
}

// toRawEvent flattens a record. Null metadata becomes empty strings; the
// normalizer drops events without artist or track.
func toRawEvent(rec endSongRecord) domain.RawPlayEvent {
	ev := domain.RawPlayEvent{
		PlayedAt: rec.Ts,
		MsPlayed: rec.MsPlayed,
		Album:    rec.AlbumName,
	}
	if rec.ArtistName != nil {
		ev.Artist = *rec.ArtistName
	}
	if rec.TrackName != nil {
		ev.Track = *rec.TrackName
	}
	return ev
}
