package domain

import (
	"time"

	"github.com/google/uuid"
)

// AliasOptions is the set of named capabilities attached to an artist alias.
// Persisted as a smallint bitmask; the repository layer converts via
// AliasOptionsFromBits and Bits so flag combinations stay type-checked in code.
type AliasOptions struct {
	// NoRedirect disables following this alias when resolving live scrobble
	// calls. The alias still resolves for plain lookups.
	NoRedirect bool

	// CorrectMetadata makes the alias eligible for automatic correction of
	// externally sourced metadata: lookups through the correction path only
	// return aliases with this capability.
	CorrectMetadata bool
}

const (
	aliasBitNoRedirect      = 1 << 0
	aliasBitCorrectMetadata = 1 << 1
)

// AliasOptionsFromBits decodes the persisted bitmask. Unknown bits are dropped.
func AliasOptionsFromBits(bits int16) AliasOptions {
	return AliasOptions{
		NoRedirect:      bits&aliasBitNoRedirect != 0,
		CorrectMetadata: bits&aliasBitCorrectMetadata != 0,
	}
}

// Bits encodes the options for storage.
func (o AliasOptions) Bits() int16 {
	var bits int16
	if o.NoRedirect {
		bits |= aliasBitNoRedirect
	}
	if o.CorrectMetadata {
		bits |= aliasBitCorrectMetadata
	}
	return bits
}

// ArtistAlias maps an alternate or misspelled artist name to a canonical
// artist. Owned by an administrative maintenance flow; the core reads it and
// updates only Options.
type ArtistAlias struct {
	ID         uuid.UUID
	ArtistID   uuid.UUID
	ArtistName string // canonical display name, denormalized from artists
	Alias      string
	Options    AliasOptions
	CreatedAt  time.Time
}

// CachedAlias is the in-memory projection of an ArtistAlias used for lookups.
// Not authoritative; always reconstructible from the alias store.
type CachedAlias struct {
	Alias      string // lowercased
	ArtistID   uuid.UUID
	ArtistName string
	Options    AliasOptions
}
