// Package save persists run results between sessions.
package save

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	progressObject = "progress"
	bestProperty   = "best"
)

// Progress is the persisted summary of past runs.
type Progress struct {
	BestScore int    `yaml:"bestScore"`
	BestLevel string `yaml:"bestLevel"` // last level reached on the best run
	Runs      int    `yaml:"runs"`
	Completed int    `yaml:"completed"`
}

// Store keeps Progress in gdata storage.
// A Store without a manager works in memory only.
type Store struct {
	manager  *gdata.Manager
	progress Progress
}

// Open opens the storage for appName and loads saved progress.
func Open(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open save data: %w", err)
	}
	return New(m)
}

// New wraps a manager, which may be nil, and loads saved progress.
func New(m *gdata.Manager) (*Store, error) {
	s := &Store{manager: m}
	if err := s.load(); err != nil {
		return s, err
	}
	return s, nil
}

func (s *Store) load() error {
	if s.manager == nil || !s.manager.ObjectPropExists(progressObject, bestProperty) {
		return nil
	}

	data, err := s.manager.LoadObjectProp(progressObject, bestProperty)
	if err != nil {
		return fmt.Errorf("failed to load progress: %w", err)
	}

	var p Progress
	if err := yaml.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("failed to unmarshal progress: %w", err)
	}
	s.progress = p
	return nil
}

// Progress returns the current summary.
func (s *Store) Progress() Progress {
	return s.progress
}

// Best returns the best score recorded so far.
func (s *Store) Best() int {
	return s.progress.BestScore
}

// RecordRun adds a finished run and saves it. It reports whether the
// score is a new best.
func (s *Store) RecordRun(score int, level string, completed bool) (bool, error) {
	s.progress.Runs++
	if completed {
		s.progress.Completed++
	}
	newBest := score > s.progress.BestScore
	if newBest {
		s.progress.BestScore = score
		s.progress.BestLevel = level
	}
	return newBest, s.save()
}

func (s *Store) save() error {
	if s.manager == nil {
		return nil
	}

	data, err := yaml.Marshal(s.progress)
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %w", err)
	}
	if err := s.manager.SaveObjectProp(progressObject, bestProperty, data); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}
