/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package registration admits RegisterAppInterface requests into the
// application registry and tells the HMI and the client about it.
package registration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/carverauto/hmibroker/pkg/capabilities"
	"github.com/carverauto/hmibroker/pkg/hmi"
	"github.com/carverauto/hmibroker/pkg/language"
	"github.com/carverauto/hmibroker/pkg/logger"
	"github.com/carverauto/hmibroker/pkg/models"
	"github.com/carverauto/hmibroker/pkg/policy"
	"github.com/carverauto/hmibroker/pkg/resumption"
)

var (
	// ErrApplicationAlreadyRegistered means the connection key already maps to a live application.
	ErrApplicationAlreadyRegistered = errors.New("application already registered")
	// ErrAppIDInUse means another connection holds the application id.
	ErrAppIDInUse = fmt.Errorf("%w: app id is live on another connection", ErrApplicationAlreadyRegistered)

	errMissingDependency = errors.New("missing orchestrator dependency")
	errUnaddressable     = errors.New("request carries no connection key")
)

// Registry is the subset of the application registry the orchestrator uses.
type Registry interface {
	Get(key uint32) (*models.Application, bool)
	FindByAppID(appID string) (*models.Application, bool)
	InsertIfAbsent(app *models.Application) bool
}

// Dependencies are the collaborators an Orchestrator is built from.
type Dependencies struct {
	Registry     Registry
	Policy       policy.Gate
	Capabilities capabilities.Source
	Resumption   resumption.Restorer
	Notifier     hmi.Notifier
}

// Outcome is the terminal result of one Handle call.
type Outcome struct {
	Code        models.ResultCode
	Info        string
	Err         error
	Application *models.Application
	Verdicts    language.Verdicts
	Warnings    []string
	ResponseErr error
}

// Orchestrator runs the RegisterAppInterface flow. It is safe for concurrent
// use across connection keys.
type Orchestrator struct {
	registry     Registry
	policy       policy.Gate
	capabilities capabilities.Source
	resumption   resumption.Restorer
	notifier     hmi.Notifier
	cfg          Config
	logger       logger.Logger
	tracer       trace.Tracer
	now          func() time.Time
}

// NewOrchestrator validates deps and returns an Orchestrator.
func NewOrchestrator(deps Dependencies, cfg *Config, log logger.Logger) (*Orchestrator, error) {
	switch {
	case deps.Registry == nil:
		return nil, fmt.Errorf("%w: registry", errMissingDependency)
	case deps.Policy == nil:
		return nil, fmt.Errorf("%w: policy", errMissingDependency)
	case deps.Capabilities == nil:
		return nil, fmt.Errorf("%w: capabilities", errMissingDependency)
	case deps.Resumption == nil:
		return nil, fmt.Errorf("%w: resumption", errMissingDependency)
	case deps.Notifier == nil:
		return nil, fmt.Errorf("%w: notifier", errMissingDependency)
	case log == nil:
		return nil, fmt.Errorf("%w: logger", errMissingDependency)
	}

	o := &Orchestrator{
		registry:     deps.Registry,
		policy:       deps.Policy,
		capabilities: deps.Capabilities,
		resumption:   deps.Resumption,
		notifier:     deps.Notifier,
		logger:       log,
		tracer:       otel.Tracer(instrumentationName),
		now:          time.Now,
	}

	if cfg != nil {
		o.cfg = *cfg
	}

	return o, nil
}

// HandleMessage decodes a raw RegisterAppInterface message and handles it.
func (o *Orchestrator) HandleMessage(ctx context.Context, data []byte) Outcome {
	req, err := models.DecodeRegistrationRequest(data)
	if err != nil {
		return o.finish(ctx, o.reject(ctx, req, err))
	}

	return o.Handle(ctx, req)
}

// Handle registers req. Exactly one client response is attempted per call.
func (o *Orchestrator) Handle(ctx context.Context, req *models.RegistrationRequest) Outcome {
	var attrs []attribute.KeyValue
	if req != nil {
		attrs = append(attrs,
			attribute.Int64("hmibroker.connection_key", int64(req.ConnectionKey)),
			attribute.String("hmibroker.app_id", req.AppID),
		)
	}

	ctx, span := o.tracer.Start(ctx, "registration.Handle",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(attrs...),
	)
	defer span.End()

	out := o.finish(ctx, o.handle(ctx, req))

	span.SetAttributes(attribute.String("hmibroker.result", string(out.Code)))

	if out.Err != nil {
		span.RecordError(out.Err)
		span.SetStatus(codes.Error, out.Err.Error())
	}

	return out
}

func (o *Orchestrator) finish(ctx context.Context, out Outcome) Outcome {
	recordRegistrationMetric(ctx, out.Code, len(out.Warnings))

	return out
}

func (o *Orchestrator) handle(ctx context.Context, req *models.RegistrationRequest) Outcome {
	if err := req.Validate(); err != nil {
		return o.reject(ctx, req, err)
	}

	ctx = hmi.WithCorrelationID(ctx, req.CorrelationID)

	log := o.logger.With().
		Uint32("connection_key", req.ConnectionKey).
		Str("app_id", req.AppID).
		Logger()

	if err := o.conflict(req); err != nil {
		return o.duplicate(ctx, req, err)
	}

	var warnings []string

	policyEnabled := o.policyEnabled(ctx)
	consent := o.consent(ctx, req.Device.Key())
	disallowed := o.isDisallowed(consent)

	app := &models.Application{
		ConnectionKey: req.ConnectionKey,
		AppID:         req.AppID,
		Name:          req.AppName,
		Device:        req.Device,
		HMITypes:      append([]models.HMIType(nil), req.HMITypes...),
		UILanguage:    req.UILanguage,
		VRLanguage:    req.VRLanguage,
		Consent:       consent,
		HMILevel:      models.HMILevelNone,
		RegisteredAt:  o.now().UTC(),
	}

	if !disallowed {
		if policyEnabled {
			if warning := o.mergeAppData(ctx, app); warning != "" {
				warnings = append(warnings, warning)
			}
		}

		app.Buttons = o.cfg.Buttons()
	}

	if !o.registry.InsertIfAbsent(app) {
		err := o.conflict(req)
		if err == nil {
			err = ErrApplicationAlreadyRegistered
		}

		return o.duplicate(ctx, req, err)
	}

	if disallowed {
		log.Info().Str("consent", string(consent)).Msg("Application registered with disallowed consent")

		out := Outcome{
			Code:        models.ResultDisallowed,
			Info:        "consent disallowed for device",
			Application: app.Clone(),
		}
		out.ResponseErr = o.respond(ctx, &hmi.RegisterAppInterfaceResponse{
			ConnectionKey: req.ConnectionKey,
			CorrelationID: req.CorrelationID,
			Success:       false,
			ResultCode:    out.Code,
			Info:          out.Info,
		})

		return out
	}

	snapshot := o.snapshot(ctx)
	verdicts := language.NegotiateAll(req.UILanguage, req.VRLanguage, snapshot)

	if !o.notifier.SendHMI(ctx, hmi.OnAppRegistered{Application: hmi.NewAppInfo(app)}) {
		warnings = append(warnings, "OnAppRegistered not submitted")
	}

	// Buttons.OnButtonSubscription names one button, so each configured
	// default gets its own notification.
	for _, button := range app.Buttons {
		msg := hmi.OnButtonSubscription{AppID: app.ConnectionKey, Name: button, IsSubscribed: true}
		if !o.notifier.SendHMI(ctx, msg) {
			warnings = append(warnings, fmt.Sprintf("OnButtonSubscription %s not submitted", button))
		}
	}

	if verdicts.AnyMismatch() {
		log.Info().
			Str("ui_requested", string(verdicts.UI.Requested)).
			Str("ui_active", string(verdicts.UI.Active)).
			Str("vr_requested", string(verdicts.VR.Requested)).
			Str("vr_active", string(verdicts.VR.Active)).
			Msg("Language mismatch, requesting change registration")

		msg := hmi.ChangeRegistration{
			AppID:              app.ConnectionKey,
			Language:           snapshot.ActiveVRLanguage,
			HMIDisplayLanguage: snapshot.ActiveUILanguage,
		}
		if !o.notifier.SendHMI(ctx, msg) {
			warnings = append(warnings, "ChangeRegistration not submitted")
		}

		if o.cfg.MismatchAsWarning {
			warnings = append(warnings, "requested language does not match the active HMI language")
		}
	}

	o.resumption.RestoreFor(ctx, app.AppID, app.ConnectionKey)

	out := Outcome{
		Code:        models.ResultSuccess,
		Application: app.Clone(),
		Verdicts:    verdicts,
		Warnings:    warnings,
	}

	if len(warnings) > 0 {
		out.Code = models.ResultWarnings
		out.Info = strings.Join(warnings, "; ")
	}

	resp := &hmi.RegisterAppInterfaceResponse{
		ConnectionKey:      req.ConnectionKey,
		CorrelationID:      req.CorrelationID,
		Success:            true,
		ResultCode:         out.Code,
		Info:               out.Info,
		Language:           snapshot.ActiveVRLanguage,
		HMIDisplayLanguage: snapshot.ActiveUILanguage,
		HMITypes:           app.HMITypes,
		SupportedDiagModes: o.cfg.SupportedDiagModes,
		SDLVersion:         o.cfg.SDLVersion,
		CCPUVersion:        snapshot.CCPUVersion,
	}

	if snapshot.Vehicle != (models.VehicleInfo{}) {
		vehicle := snapshot.Vehicle
		resp.VehicleType = &vehicle
	}

	out.ResponseErr = o.respond(ctx, resp)

	log.Info().Str("result", string(out.Code)).Int("warnings", len(warnings)).Msg("Application registered")

	return out
}

func (o *Orchestrator) reject(ctx context.Context, req *models.RegistrationRequest, err error) Outcome {
	out := Outcome{
		Code: models.ResultInvalidData,
		Info: err.Error(),
		Err:  err,
	}

	if req == nil || req.ConnectionKey == 0 {
		o.logger.Warn().Err(err).Msg("Dropping registration request that cannot be answered")

		out.ResponseErr = fmt.Errorf("%w: %w", hmi.ErrResponseNotSent, errUnaddressable)

		return out
	}

	o.logger.Debug().Err(err).Uint32("connection_key", req.ConnectionKey).Msg("Rejecting invalid registration request")

	out.ResponseErr = o.respond(ctx, &hmi.RegisterAppInterfaceResponse{
		ConnectionKey: req.ConnectionKey,
		CorrelationID: req.CorrelationID,
		ResultCode:    out.Code,
		Info:          out.Info,
	})

	return out
}

// conflict reports whether req collides with a live application, either on
// its connection key or on its app id.
func (o *Orchestrator) conflict(req *models.RegistrationRequest) error {
	if _, exists := o.registry.Get(req.ConnectionKey); exists {
		return ErrApplicationAlreadyRegistered
	}

	if live, exists := o.registry.FindByAppID(req.AppID); exists && live.ConnectionKey != req.ConnectionKey {
		return ErrAppIDInUse
	}

	return nil
}

func (o *Orchestrator) duplicate(ctx context.Context, req *models.RegistrationRequest, err error) Outcome {
	o.logger.Debug().
		Err(err).
		Uint32("connection_key", req.ConnectionKey).
		Str("app_id", req.AppID).
		Msg("Registration collides with a live application")

	out := Outcome{
		Code: models.ResultApplicationRegisteredAlready,
		Info: err.Error(),
		Err:  err,
	}
	out.ResponseErr = o.respond(ctx, &hmi.RegisterAppInterfaceResponse{
		ConnectionKey: req.ConnectionKey,
		CorrelationID: req.CorrelationID,
		ResultCode:    out.Code,
		Info:          out.Info,
	})

	return out
}

func (o *Orchestrator) respond(ctx context.Context, resp *hmi.RegisterAppInterfaceResponse) error {
	if err := o.notifier.SendClientResponse(ctx, resp); err != nil {
		o.logger.Error().Err(err).
			Uint32("connection_key", resp.ConnectionKey).
			Str("result", string(resp.ResultCode)).
			Msg("Failed to send RegisterAppInterface response")

		return err
	}

	return nil
}

func (o *Orchestrator) policyEnabled(ctx context.Context) bool {
	enabled, err := o.policy.IsEnabled(ctx)
	if err != nil {
		o.logger.Warn().Err(err).Msg("Policy subsystem unavailable, continuing without policy data")

		return false
	}

	return enabled
}

func (o *Orchestrator) consent(ctx context.Context, deviceID string) models.ConsentDecision {
	decision, err := o.policy.GetConsent(ctx, deviceID)
	if err != nil {
		o.logger.Warn().Err(err).Str("device", deviceID).Msg("Consent lookup failed, treating as unknown")

		return models.ConsentUnknown
	}

	switch decision {
	case models.ConsentAllowed, models.ConsentDisallowed, models.ConsentUnknown:
		return decision
	default:
		return models.ConsentUnknown
	}
}

func (o *Orchestrator) isDisallowed(consent models.ConsentDecision) bool {
	switch consent {
	case models.ConsentDisallowed:
		return true
	case models.ConsentUnknown:
		return !o.cfg.FailOpen()
	case models.ConsentAllowed:
		return false
	default:
		return false
	}
}

// mergeAppData fills policy metadata the request left out and returns a
// warning when the policy had nothing usable for the application.
func (o *Orchestrator) mergeAppData(ctx context.Context, app *models.Application) string {
	data, ok, err := o.policy.GetInitialAppData(ctx, app.AppID)
	if err != nil {
		o.logger.Warn().Err(err).Str("app_id", app.AppID).Msg("Initial app data unavailable")

		return "policy app data unavailable"
	}

	if !ok {
		return "no policy app data for application"
	}

	app.RequestTypes = append([]string(nil), data.RequestTypes...)

	if len(app.HMITypes) == 0 {
		app.HMITypes = append([]models.HMIType(nil), data.HMITypes...)
	}

	return ""
}

func (o *Orchestrator) snapshot(ctx context.Context) models.CapabilitySnapshot {
	snap, err := o.capabilities.Snapshot(ctx)
	if err != nil {
		o.logger.Warn().Err(err).Msg("HMI capabilities unavailable, using defaults")

		return models.DefaultCapabilitySnapshot()
	}

	if snap.ActiveUILanguage.IsZero() {
		snap.ActiveUILanguage = models.DefaultLanguage
	}

	if snap.ActiveVRLanguage.IsZero() {
		snap.ActiveVRLanguage = models.DefaultLanguage
	}

	return snap
}
