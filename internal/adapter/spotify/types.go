package spotify

import "time"

// endSongRecord is a single record from a Spotify extended streaming history
// file ("endsong_N.json" / "Streaming_History_Audio_*.json"). Metadata fields
// are null for podcast episodes and local files.
type endSongRecord struct {
	Ts         time.Time `json:"ts"`
	MsPlayed   int64     `json:"ms_played"`
	TrackName  *string   `json:"master_metadata_track_name"`
	ArtistName *string   `json:"master_metadata_album_artist_name"`
	AlbumName  *string   `json:"master_metadata_album_album_name"`
}
