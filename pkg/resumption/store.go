package resumption

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/carverauto/hmibroker/pkg/kv"
	"github.com/carverauto/hmibroker/pkg/models"
)

const keyPrefix = "app."

// State is what survives a disconnect for one application id.
type State struct {
	AppID      string              `json:"app_id"`
	HMILevel   models.HMILevel     `json:"hmi_level"`
	IconPath   string              `json:"icon_path,omitempty"`
	Buttons    []models.ButtonName `json:"subscribed_buttons,omitempty"`
	UILanguage models.Language     `json:"ui_language,omitempty"`
	VRLanguage models.Language     `json:"language,omitempty"`
	SavedAt    time.Time           `json:"saved_at"`
}

// StateFromApplication captures the resumable parts of app.
func StateFromApplication(app *models.Application, now time.Time) *State {
	return &State{
		AppID:      app.AppID,
		HMILevel:   app.HMILevel,
		IconPath:   app.IconPath,
		Buttons:    append([]models.ButtonName(nil), app.Buttons...),
		UILanguage: app.UILanguage,
		VRLanguage: app.VRLanguage,
		SavedAt:    now.UTC(),
	}
}

// Store persists State keyed by application id.
type Store interface {
	Load(ctx context.Context, appID string) (*State, bool, error)
	Save(ctx context.Context, state *State) error
	Delete(ctx context.Context, appID string) error
}

// MemoryStore keeps state in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]State
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]State)}
}

func (m *MemoryStore) Load(_ context.Context, appID string) (*State, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state, ok := m.states[storeKey(appID)]
	if !ok {
		return nil, false, nil
	}

	state.Buttons = append([]models.ButtonName(nil), state.Buttons...)

	return &state, true, nil
}

func (m *MemoryStore) Save(_ context.Context, state *State) error {
	if state == nil {
		return nil
	}

	copied := *state
	copied.Buttons = append([]models.ButtonName(nil), state.Buttons...)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.states[storeKey(state.AppID)] = copied

	return nil
}

func (m *MemoryStore) Delete(_ context.Context, appID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.states, storeKey(appID))

	return nil
}

// KVStore persists JSON-encoded state in a kv.KVStore.
type KVStore struct {
	kv kv.KVStore
}

var _ Store = (*KVStore)(nil)

func NewKVStore(store kv.KVStore) *KVStore {
	return &KVStore{kv: store}
}

func (s *KVStore) Load(ctx context.Context, appID string) (*State, bool, error) {
	data, found, err := s.kv.Get(ctx, storeKey(appID))
	if err != nil {
		return nil, false, fmt.Errorf("failed to load resumption state for %s: %w", appID, err)
	}

	if !found {
		return nil, false, nil
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, false, fmt.Errorf("failed to decode resumption state for %s: %w", appID, err)
	}

	return &state, true, nil
}

func (s *KVStore) Save(ctx context.Context, state *State) error {
	if state == nil {
		return nil
	}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal resumption state: %w", err)
	}

	return s.kv.Put(ctx, storeKey(state.AppID), data)
}

func (s *KVStore) Delete(ctx context.Context, appID string) error {
	return s.kv.Delete(ctx, storeKey(appID))
}

// storeKey hex-encodes the normalized app id so distinct ids never share a
// key within the JetStream key alphabet.
func storeKey(appID string) string {
	return keyPrefix + hex.EncodeToString([]byte(normalizeAppID(appID)))
}

func normalizeAppID(appID string) string {
	return strings.ToLower(strings.TrimSpace(appID))
}
