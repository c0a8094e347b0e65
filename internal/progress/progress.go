// Package progress renders a terminal progress bar for long imports. The
// import pipeline only talks to the Tracker interface, so json-logging and
// test runs plug in the no-op implementation.
package progress

import (
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// Tracker tracks progress through a single file import.
type Tracker interface {
	SetTotal(total int64)
	Increment()
	Done()
}

// Manager creates trackers and owns the terminal rendering.
type Manager interface {
	NewTracker(name string) Tracker
	Wait()
}

// MPBManager implements Manager using the mpb multi-progress-bar library.
type MPBManager struct {
	container *mpb.Progress
}

// NewMPBManager creates a new mpb-based progress manager.
func NewMPBManager() *MPBManager {
	return &MPBManager{container: mpb.New(mpb.WithWidth(60))}
}

// NewTracker creates a progress bar for one file.
func (m *MPBManager) NewTracker(name string) Tracker {
	bar := m.container.AddBar(0,
		mpb.PrependDecorators(
			decor.Name(name+" ", decor.WCSyncSpaceR),
		),
		mpb.AppendDecorators(
			decor.CountersNoUnit("%d / %d rows"),
		),
	)
	return &mpbTracker{bar: bar}
}

// Wait waits for all bars to finish rendering.
func (m *MPBManager) Wait() {
	m.container.Wait()
}

type mpbTracker struct {
	bar *mpb.Bar
}

func (t *mpbTracker) SetTotal(total int64) {
	t.bar.SetTotal(total, false)
}

func (t *mpbTracker) Increment() {
	t.bar.Increment()
}

func (t *mpbTracker) Done() {
	t.bar.EnableTriggerComplete()
	t.bar.SetTotal(-1, true)
}

// NoopManager is a no-op progress manager for non-interactive use.
type NoopManager struct{}

func (NoopManager) NewTracker(string) Tracker { return noopTracker{} }
func (NoopManager) Wait()                     {}

type noopTracker struct{}

func (noopTracker) SetTotal(int64) {}
func (noopTracker) Increment()     {}
func (noopTracker) Done()          {}
