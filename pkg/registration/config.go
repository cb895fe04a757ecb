package registration

import (
	"github.com/carverauto/hmibroker/pkg/models"
)

// Config tunes how registration outcomes are decided and what the
// response advertises.
type Config struct {
	// ConsentFailOpen maps an UNKNOWN consent decision onto the allowed
	// branch. Nil means true.
	ConsentFailOpen *bool `json:"consent_fail_open,omitempty"`

	// MismatchAsWarning reports a language mismatch as WARNINGS instead of SUCCESS.
	MismatchAsWarning bool `json:"mismatch_as_warning"`

	DefaultButtons     []models.ButtonName `json:"default_buttons,omitempty"`
	SDLVersion         string              `json:"sdl_version,omitempty"`
	SupportedDiagModes []uint32            `json:"supported_diag_modes,omitempty"`
}

// FailOpen reports whether unknown consent is treated as allowed.
func (c *Config) FailOpen() bool {
	if c == nil || c.ConsentFailOpen == nil {
		return true
	}

	return *c.ConsentFailOpen
}

// Buttons returns the buttons subscribed for every new application.
func (c *Config) Buttons() []models.ButtonName {
	if c == nil || len(c.DefaultButtons) == 0 {
		return models.DefaultButtonSubscriptions()
	}

	return append([]models.ButtonName(nil), c.DefaultButtons...)
}
