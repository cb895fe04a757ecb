package registry

import (
	"sort"
	"strings"
	"sync"

	"github.com/carverauto/hmibroker/pkg/models"
)

// ApplicationRegistry holds live Applications keyed by connection key.
// Application ids are unique across live entries, compared case-insensitively.
//
// A single RWMutex guards both maps. It is held only for the map operation
// itself; callers must never perform bus or policy I/O while holding it,
// which the API enforces by taking and returning clones.
type ApplicationRegistry struct {
	mu      sync.RWMutex
	apps    map[uint32]*models.Application
	byAppID map[string]uint32
}

// NewApplicationRegistry returns an empty registry.
func NewApplicationRegistry() *ApplicationRegistry {
	return &ApplicationRegistry{
		apps:    make(map[uint32]*models.Application),
		byAppID: make(map[string]uint32),
	}
}

// Insert stores app under its connection key, replacing any prior entry for
// that key. It returns false when the app id is live on another connection.
func (r *ApplicationRegistry) Insert(app *models.Application) bool {
	if app == nil || app.ConnectionKey == 0 {
		return false
	}

	input := app.Clone()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.appIDTakenLocked(input) {
		return false
	}

	r.storeLocked(input)

	return true
}

// InsertIfAbsent stores app only when neither its connection key nor its
// app id is live. The checks and the insert happen in one critical section.
func (r *ApplicationRegistry) InsertIfAbsent(app *models.Application) bool {
	if app == nil || app.ConnectionKey == 0 {
		return false
	}

	input := app.Clone()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.apps[input.ConnectionKey]; exists {
		return false
	}

	if r.appIDTakenLocked(input) {
		return false
	}

	r.storeLocked(input)

	return true
}

func (r *ApplicationRegistry) appIDTakenLocked(app *models.Application) bool {
	key, ok := r.byAppID[normalizeAppID(app.AppID)]

	return ok && key != app.ConnectionKey
}

func (r *ApplicationRegistry) storeLocked(app *models.Application) {
	if existing, ok := r.apps[app.ConnectionKey]; ok {
		r.unindexLocked(existing)
	}

	r.apps[app.ConnectionKey] = app

	if id := normalizeAppID(app.AppID); id != "" {
		r.byAppID[id] = app.ConnectionKey
	}
}

func (r *ApplicationRegistry) unindexLocked(app *models.Application) {
	id := normalizeAppID(app.AppID)
	if key, ok := r.byAppID[id]; ok && key == app.ConnectionKey {
		delete(r.byAppID, id)
	}
}

// Get returns a copy of the Application registered under key.
func (r *ApplicationRegistry) Get(key uint32) (*models.Application, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	app, ok := r.apps[key]
	if !ok {
		return nil, false
	}

	return app.Clone(), true
}

// FindByAppID returns the live Application with the given application id.
func (r *ApplicationRegistry) FindByAppID(appID string) (*models.Application, bool) {
	id := normalizeAppID(appID)
	if id == "" {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	key, ok := r.byAppID[id]
	if !ok {
		return nil, false
	}

	return r.apps[key].Clone(), true
}

// Update applies fn to the stored Application under the registry lock.
// fn must not block and cannot change the connection key or app id. It
// returns false when key is not registered.
func (r *ApplicationRegistry) Update(key uint32, fn func(app *models.Application)) bool {
	if fn == nil {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	app, ok := r.apps[key]
	if !ok {
		return false
	}

	updated := app.Clone()
	fn(updated)
	updated.ConnectionKey = key
	updated.AppID = app.AppID

	r.storeLocked(updated)

	return true
}

// Remove drops the Application for key and returns what was stored.
func (r *ApplicationRegistry) Remove(key uint32) (*models.Application, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	app, ok := r.apps[key]
	if !ok {
		return nil, false
	}

	r.unindexLocked(app)
	delete(r.apps, key)

	return app, true
}

// Snapshot returns copies of every live Application ordered by connection key.
func (r *ApplicationRegistry) Snapshot() []*models.Application {
	r.mu.RLock()
	out := make([]*models.Application, 0, len(r.apps))

	for _, app := range r.apps {
		out = append(out, app.Clone())
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].ConnectionKey < out[j].ConnectionKey
	})

	return out
}

// Len returns the number of live Applications.
func (r *ApplicationRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.apps)
}

func normalizeAppID(appID string) string {
	return strings.ToLower(strings.TrimSpace(appID))
}
