// Package capabilities exposes HMI capabilities that were already
// discovered elsewhere.
package capabilities

//go:generate mockgen -destination=mock_capabilities.go -package=capabilities github.com/carverauto/hmibroker/pkg/capabilities Source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/carverauto/hmibroker/pkg/models"
)

// ErrCapabilityUnavailable is returned until capabilities have been discovered.
var ErrCapabilityUnavailable = errors.New("capability subsystem unavailable")

// Source is a read-only view of discovered HMI capabilities.
type Source interface {
	Snapshot(ctx context.Context) (models.CapabilitySnapshot, error)
	ActiveUILanguage(ctx context.Context) (models.Language, error)
	ActiveVRLanguage(ctx context.Context) (models.Language, error)
}

// Store holds the latest snapshot reported by the HMI.
type Store struct {
	mu    sync.RWMutex
	snap  models.CapabilitySnapshot
	ready bool
}

var _ Source = (*Store)(nil)

// NewStore returns a store that is unavailable until Set is called.
func NewStore() *Store {
	return &Store{}
}

// NewStoreWith returns a store seeded with snap.
func NewStoreWith(snap models.CapabilitySnapshot) *Store {
	s := NewStore()
	s.Set(snap)

	return s
}

// Set replaces the current snapshot.
func (s *Store) Set(snap models.CapabilitySnapshot) {
	snap.SupportedLanguages = append([]models.Language(nil), snap.SupportedLanguages...)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap = snap
	s.ready = true
}

// SetJSON decodes a snapshot published on the bus and stores it.
func (s *Store) SetJSON(data []byte) error {
	var snap models.CapabilitySnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("failed to decode capability snapshot: %w", err)
	}

	s.Set(snap)

	return nil
}

// Reset marks capabilities as unknown again, e.g. after the HMI restarted.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap = models.CapabilitySnapshot{}
	s.ready = false
}

func (s *Store) Snapshot(_ context.Context) (models.CapabilitySnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.ready {
		return models.CapabilitySnapshot{}, ErrCapabilityUnavailable
	}

	snap := s.snap
	snap.SupportedLanguages = append([]models.Language(nil), s.snap.SupportedLanguages...)

	return snap, nil
}

func (s *Store) ActiveUILanguage(ctx context.Context) (models.Language, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return "", err
	}

	return snap.ActiveUILanguage, nil
}

func (s *Store) ActiveVRLanguage(ctx context.Context) (models.Language, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return "", err
	}

	return snap.ActiveVRLanguage, nil
}
