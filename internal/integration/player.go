package integration

import (
	"fmt"
	"sync"

	vlc "github.com/adrg/libvlc-go/v3"
)

// PlaybackState is the coarse playback state exposed to the watchdog.
// This mirrors core.PlayerState but is defined here to avoid the import.
type PlaybackState int

const (
	PlaybackUnknown PlaybackState = iota
	PlaybackPlaying
	PlaybackEnded
)

// MediaPlayer wraps a libvlc player around a single audio track. One
// handle exists per process lifetime; the watchdog only restarts the
// playback position, never the handle. Every call is serialized through a
// mutex so background ramp writes and main-loop writes never interleave on
// the engine.
type MediaPlayer struct {
	mu     sync.Mutex
	player *vlc.Player
	media  *vlc.Media
}

// NewMediaPlayer initializes the VLC engine and loads the given track.
func NewMediaPlayer(soundFile string) (*MediaPlayer, error) {
	if err := vlc.Init("--quiet", "--no-video"); err != nil {
		return nil, fmt.Errorf("initializing vlc: %w", err)
	}

	player, err := vlc.NewPlayer()
	if err != nil {
		_ = vlc.Release()
		return nil, fmt.Errorf("creating player: %w", err)
	}

	media, err := player.LoadMediaFromPath(soundFile)
	if err != nil {
		_ = player.Release()
		_ = vlc.Release()
		return nil, fmt.Errorf("loading media %s: %w", soundFile, err)
	}

	return &MediaPlayer{player: player, media: media}, nil
}

// Play starts or resumes playback.
func (m *MediaPlayer) Play() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.player.Play()
}

// Stop halts playback.
func (m *MediaPlayer) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.player.Stop()
}

// Rewind seeks playback back to the start of the track.
func (m *MediaPlayer) Rewind() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.player.SetMediaTime(0)
}

// State reports the current playback state. Engine errors map to
// PlaybackUnknown; the watchdog treats that as nothing to do.
func (m *MediaPlayer) State() PlaybackState {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, err := m.player.MediaState()
	if err != nil {
		return PlaybackUnknown
	}
	switch state {
	case vlc.MediaEnded:
		return PlaybackEnded
	case vlc.MediaPlaying:
		return PlaybackPlaying
	default:
		return PlaybackUnknown
	}
}

// Volume returns the current loudness percentage.
func (m *MediaPlayer) Volume() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.player.Volume()
}

// SetVolume sets the loudness percentage. The engine accepts values in
// [0, 250].
func (m *MediaPlayer) SetVolume(v int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.player.SetVolume(v)
}

// Close releases the media, the player, and the VLC engine.
func (m *MediaPlayer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.media != nil {
		_ = m.media.Release()
		m.media = nil
	}
	if m.player != nil {
		_ = m.player.Release()
		m.player = nil
	}
	return vlc.Release()
}
