package policy

import (
	"context"
	"strings"
	"sync"

	"github.com/carverauto/hmibroker/pkg/models"
)

// Config is the policy table section of the service configuration.
type Config struct {
	Enabled bool `json:"enabled"`

	// DefaultConsent applies to devices with no explicit entry.
	DefaultConsent models.ConsentDecision            `json:"default_consent"`
	Devices        map[string]models.ConsentDecision `json:"devices,omitempty"`
	Apps           map[string]AppData                `json:"apps,omitempty"`
	CacheTTL       models.Duration                   `json:"cache_ttl"`
}

// StaticGate serves policy answers from an in-memory table.
type StaticGate struct {
	mu      sync.RWMutex
	enabled bool
	deflt   models.ConsentDecision
	devices map[string]models.ConsentDecision
	apps    map[string]AppData
}

var _ Gate = (*StaticGate)(nil)

// NewStaticGate builds a gate from cfg. A nil cfg yields a disabled gate.
func NewStaticGate(cfg *Config) *StaticGate {
	g := &StaticGate{
		deflt:   models.ConsentUnknown,
		devices: make(map[string]models.ConsentDecision),
		apps:    make(map[string]AppData),
	}

	if cfg == nil {
		return g
	}

	g.enabled = cfg.Enabled

	if cfg.DefaultConsent != "" {
		g.deflt = cfg.DefaultConsent
	}

	for device, consent := range cfg.Devices {
		g.devices[normalizeKey(device)] = consent
	}

	for appID, data := range cfg.Apps {
		g.apps[normalizeKey(appID)] = data
	}

	return g
}

func (g *StaticGate) IsEnabled(_ context.Context) (bool, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.enabled, nil
}

func (g *StaticGate) GetConsent(_ context.Context, deviceID string) (models.ConsentDecision, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if consent, ok := g.devices[normalizeKey(deviceID)]; ok {
		return consent, nil
	}

	return g.deflt, nil
}

func (g *StaticGate) GetInitialAppData(_ context.Context, appID string) (AppData, bool, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	data, ok := g.apps[normalizeKey(appID)]
	if !ok {
		return AppData{}, false, nil
	}

	return AppData{
		RequestTypes: append([]string(nil), data.RequestTypes...),
		HMITypes:     append([]models.HMIType(nil), data.HMITypes...),
	}, true, nil
}

// SetConsent records a consent decision, e.g. after the user answered the
// HMI consent prompt.
func (g *StaticGate) SetConsent(deviceID string, consent models.ConsentDecision) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.devices[normalizeKey(deviceID)] = consent
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
