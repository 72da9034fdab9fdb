package core

import (
	"context"
	"sync"

	"github.com/aural/aura/pkg/models"
)

// fakePlayer implements Player and VolumeSink for tests, recording calls.
type fakePlayer struct {
	mu      sync.Mutex
	state   PlayerState
	volume  int
	playErr error

	plays   int
	stops   int
	rewinds int
	writes  []int
}

func (p *fakePlayer) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.plays++
	if p.playErr == nil {
		p.state = StatePlaying
	}
	return p.playErr
}

func (p *fakePlayer) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stops++
	return nil
}

func (p *fakePlayer) Rewind() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rewinds++
	return nil
}

func (p *fakePlayer) State() PlayerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *fakePlayer) Volume() (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume, nil
}

func (p *fakePlayer) SetVolume(v int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = v
	p.writes = append(p.writes, v)
	return nil
}

func (p *fakePlayer) recordedWrites() []int {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]int, len(p.writes))
	copy(out, p.writes)
	return out
}

// fakeSource implements MetricSource with canned results.
type fakeSource struct {
	levels []int
	ok     bool
	err    error
}

func (s *fakeSource) FetchLevels(ctx context.Context) ([]int, bool, error) {
	return s.levels, s.ok, s.err
}

// fakeEmitter records emitted tones.
type fakeEmitter struct {
	tones []models.ToneSpec
}

func (e *fakeEmitter) Emit(tone models.ToneSpec) error {
	e.tones = append(e.tones, tone)
	return nil
}

// fakeEvents records logged events.
type fakeEvents struct {
	types []string
	data  []map[string]any
}

func (e *fakeEvents) LogEvent(eventType string, data map[string]any) error {
	e.types = append(e.types, eventType)
	e.data = append(e.data, data)
	return nil
}

func (e *fakeEvents) has(eventType string) bool {
	for _, t := range e.types {
		if t == eventType {
			return true
		}
	}
	return false
}

// fakeNotifier records alert digests.
type fakeNotifier struct {
	calls int
	tones [][]models.ToneSpec
}

func (n *fakeNotifier) NotifyTones(summary models.MetricSummary, tones []models.ToneSpec) error {
	n.calls++
	n.tones = append(n.tones, tones)
	return nil
}
