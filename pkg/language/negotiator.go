// Package language compares the languages a mobile application asks for
// against the languages the HMI is currently running.
package language

import "github.com/carverauto/hmibroker/pkg/models"

// Outcome is the result of comparing one language axis.
type Outcome string

const (
	Match    Outcome = "MATCH"
	Mismatch Outcome = "MISMATCH"
)

// Verdict is the comparison result for one axis.
type Verdict struct {
	Outcome   Outcome         `json:"outcome"`
	Requested models.Language `json:"requested"`
	Active    models.Language `json:"active"`
}

// Matched reports whether the axis needs no change registration.
func (v Verdict) Matched() bool {
	return v.Outcome == Match
}

// Negotiate compares requested against active by exact code equality.
// An absent requested language only matches the default language.
func Negotiate(requested, active models.Language) Verdict {
	v := Verdict{Outcome: Mismatch, Requested: requested, Active: active}

	switch {
	case requested.IsZero():
		if active == models.DefaultLanguage {
			v.Outcome = Match
		}
	case requested == active:
		v.Outcome = Match
	}

	return v
}

// Verdicts holds the independent UI and VR results.
type Verdicts struct {
	UI Verdict `json:"ui"`
	VR Verdict `json:"vr"`
}

// AnyMismatch reports whether either axis mismatched.
func (v Verdicts) AnyMismatch() bool {
	return !v.UI.Matched() || !v.VR.Matched()
}

// NegotiateAll evaluates both axes against the snapshot.
func NegotiateAll(requestedUI, requestedVR models.Language, snapshot models.CapabilitySnapshot) Verdicts {
	return Verdicts{
		UI: Negotiate(requestedUI, snapshot.ActiveUILanguage),
		VR: Negotiate(requestedVR, snapshot.ActiveVRLanguage),
	}
}
