package audio

import (
	"errors"
)

// Role names the job a game channel holds during a level
type Role int

const (
	RoleBGM Role = iota
	RoleExitA
	RoleExitB
	RolePreview
)

func (r Role) String() string {
	names := [...]string{"bgm", "exitA", "exitB", "preview"}
	if r >= 0 && int(r) < len(names) {
		return names[r]
	}
	return "unknown"
}

// Sentinel errors
var (
	ErrEmptyCatalog   = errors.New("track catalog is empty")
	ErrDuplicateTrack = errors.New("duplicate track id")
	ErrUnknownTrack   = errors.New("unknown track")
	ErrNoMusicDir     = errors.New("no music directory configured")
	ErrEmptyTrack     = errors.New("track decoded to zero samples")
	ErrNotLoaded      = errors.New("channel has no track loaded")
	ErrLoadFailed     = errors.New("track load failed")
)
