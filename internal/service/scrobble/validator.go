// Package scrobble decides whether a raw play event counts as a listen.
package scrobble

import (
	"context"
	"time"

	"github.com/tunelog/tunelog-backend/internal/config"
)

// Validator is the default play validity rule: a play counts once it ran for
// at least the configured minimum duration. Skips and preview blips fall
// under the threshold and are rejected.
type Validator struct {
	minPlay time.Duration
}

// NewValidator creates a Validator from import settings.
func NewValidator(cfg config.ImportConfig) *Validator {
	return &Validator{minPlay: cfg.MinPlayDuration}
}

// IsValidPlay reports whether the event qualifies as a real listen.
// Artist and track are part of the contract so richer rules (for example
// track-length lookups) can slot in without changing callers.
func (v *Validator) IsValidPlay(ctx context.Context, artist, track string, msPlayed int64) (bool, error) {
	_ = artist
	_ = track
	return msPlayed >= v.minPlay.Milliseconds(), nil
}
