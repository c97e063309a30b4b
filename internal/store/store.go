// Package store persists the two player preferences that outlive a
// session: the best score and the mute flag.
package store

import "sync"

// Store reads and writes the persisted preferences. Reads return the
// documented default in place of absent or malformed values; errors are
// reserved for real I/O failures.
type Store interface {
	BestScore() (int, error)
	SetBestScore(score int) error
	Muted() (bool, error)
	SetMuted(muted bool) error
}

// Memory is an in-process Store used in tests and as a fallback when
// the database cannot be opened. The zero value is ready to use.
type Memory struct {
	mu    sync.Mutex
	best  int
	muted bool
}

func (m *Memory) BestScore() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.best, nil
}

func (m *Memory) SetBestScore(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.best = score
	return nil
}

func (m *Memory) Muted() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.muted, nil
}

func (m *Memory) SetMuted(muted bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
	return nil
}
