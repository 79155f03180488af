package domain

import (
	"time"

	"github.com/google/uuid"
)

// PlaySource tags where a play record originated.
type PlaySource string

const (
	// PlaySourceLastfm marks plays recorded by live scrobbling. Historical
	// rows created before sources were tracked are reclassified to this value.
	PlaySourceLastfm PlaySource = "lastfm"

	// PlaySourceSpotifyImport marks plays ingested from a Spotify extended
	// streaming history export.
	PlaySourceSpotifyImport PlaySource = "spotify_import"
)

// RawPlayEvent is a single line item decoded from an export file.
// Events are transient: they are discarded after normalization.
type RawPlayEvent struct {
	Artist   string
	Album    *string
	Track    string
	PlayedAt time.Time
	MsPlayed int64
}

// Play is the durable unit of listening history. Within one user's history
// the timestamp is unique per import source. Plays are created in bulk by
// the import orchestrator and never mutated field-by-field once stored.
type Play struct {
	UserID   uuid.UUID
	Artist   string
	Album    *string
	Track    string
	PlayedAt time.Time // always UTC
	MsPlayed int64
	Source   PlaySource
}

// Attachment is a URL-addressable export file handed in by the hosting layer.
type Attachment struct {
	Filename string
	URL      string
}
