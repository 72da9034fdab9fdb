package core

import (
	"context"

	"github.com/aural/aura/pkg/models"
)

// PlayerState is the coarse playback state the controller cares about.
type PlayerState int

const (
	// StateUnknown covers every state the watchdog does not act on,
	// including errors while querying the player.
	StateUnknown PlayerState = iota
	StatePlaying
	StateEnded
)

// Player is the subset of the media player that core services need.
// Defining it here avoids importing the integration package; the one
// concrete player handle is created at startup and never recreated.
type Player interface {
	Play() error
	Stop() error
	// Rewind seeks playback back to the start of the track.
	Rewind() error
	State() PlayerState
	Volume() (int, error)
	SetVolume(v int) error
}

// MetricSource fetches raw per-message severity levels for the query window.
// ok is false when the backend rejected the query (non-200); the caller
// substitutes the sentinel summary in that case. A non-nil error means the
// request itself could not complete and is treated as fatal upstream.
type MetricSource interface {
	FetchLevels(ctx context.Context) (levels []int, ok bool, err error)
}

// ToneEmitter plays a single alert beep, blocking for its duration.
type ToneEmitter interface {
	Emit(tone models.ToneSpec) error
}

// EventLogger is the subset of the observability event log that core
// services need. Defining it here avoids importing the observability package.
type EventLogger interface {
	LogEvent(eventType string, data map[string]any) error
}
