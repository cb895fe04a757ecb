package language

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/carverauto/hmibroker/pkg/models"
)

func TestNegotiate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		requested models.Language
		active    models.Language
		want      Outcome
	}{
		{"exact match", models.LanguageEnUS, models.LanguageEnUS, Match},
		{"different code", models.LanguageEnUS, models.LanguageDeDE, Mismatch},
		{"no locale fallback", models.LanguageEnGB, models.LanguageEnUS, Mismatch},
		{"absent against default", "", models.DefaultLanguage, Match},
		{"absent against other", "", models.LanguageFrFR, Mismatch},
		{"absent against absent", "", "", Mismatch},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			v := Negotiate(tc.requested, tc.active)
			assert.Equal(t, tc.want, v.Outcome)
			assert.Equal(t, tc.requested, v.Requested)
			assert.Equal(t, tc.active, v.Active)
		})
	}
}

func TestNegotiateAllAxesIndependent(t *testing.T) {
	t.Parallel()

	snap := models.CapabilitySnapshot{
		ActiveUILanguage: models.LanguageDeDE,
		ActiveVRLanguage: models.LanguageEnUS,
	}

	v := NegotiateAll(models.LanguageEnUS, models.LanguageEnUS, snap)
	assert.False(t, v.UI.Matched())
	assert.True(t, v.VR.Matched())
	assert.True(t, v.AnyMismatch())

	full := NegotiateAll(models.LanguageDeDE, models.LanguageEnUS, snap)
	assert.False(t, full.AnyMismatch())
}

func TestNegotiateProperties(t *testing.T) {
	langs := models.SupportedLanguages()

	rapid.Check(t, func(t *rapid.T) {
		requested := rapid.SampledFrom(langs).Draw(t, "requested")
		active := rapid.SampledFrom(langs).Draw(t, "active")

		v := Negotiate(requested, active)
		if v.Matched() != (requested == active) {
			t.Fatalf("Negotiate(%s, %s) = %s", requested, active, v.Outcome)
		}

		ui := rapid.SampledFrom(langs).Draw(t, "ui")
		vr := rapid.SampledFrom(langs).Draw(t, "vr")
		snap := models.CapabilitySnapshot{ActiveUILanguage: active, ActiveVRLanguage: active}

		all := NegotiateAll(ui, vr, snap)
		if all.AnyMismatch() != (ui != active || vr != active) {
			t.Fatalf("AnyMismatch disagrees for ui=%s vr=%s active=%s", ui, vr, active)
		}
	})
}
