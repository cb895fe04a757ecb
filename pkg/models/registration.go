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

package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidRequest marks a registration request that failed shape validation.
	ErrInvalidRequest = errors.New("invalid registration request")

	errMissingConnectionKey = errors.New("connection_key is required")
	errMissingAppID         = errors.New("app_id is required")
	errMissingAppName       = errors.New("app_name is required")
)

// RegistrationRequest is the validated view of RegisterAppInterface.
type RegistrationRequest struct {
	ConnectionKey uint32
	CorrelationID uint32
	AppID         string
	AppName       string
	// VRLanguage is the wire field language_desired.
	VRLanguage Language
	// UILanguage is the wire field hmi_display_language_desired.
	UILanguage Language
	HMITypes   []HMIType
	Device     DeviceInfo
}

// Validate checks required fields. Errors wrap ErrInvalidRequest.
func (r *RegistrationRequest) Validate() error {
	if r == nil {
		return fmt.Errorf("%w: nil request", ErrInvalidRequest)
	}

	if r.ConnectionKey == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, errMissingConnectionKey)
	}

	if strings.TrimSpace(r.AppID) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, errMissingAppID)
	}

	if strings.TrimSpace(r.AppName) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, errMissingAppName)
	}

	return nil
}

// RegisterAppInterfaceMessage is the JSON shape of the inbound mobile RPC.
type RegisterAppInterfaceMessage struct {
	Params struct {
		ConnectionKey uint32     `json:"connection_key"`
		CorrelationID uint32     `json:"correlation_id"`
		Device        DeviceInfo `json:"device"`
	} `json:"params"`
	MsgParams struct {
		AppID                     string   `json:"app_id"`
		AppName                   string   `json:"app_name"`
		LanguageDesired           string   `json:"language_desired"`
		HMIDisplayLanguageDesired string   `json:"hmi_display_language_desired"`
		AppHMIType                []string `json:"app_hmi_type,omitempty"`
	} `json:"msg_params"`
}

// DecodeRegistrationRequest builds a typed request from the wire message.
// Missing required fields are left for Validate. When the JSON parses but an
// enumeration value is unknown, the returned request still carries the
// connection and correlation ids so the caller can address a rejection.
func DecodeRegistrationRequest(data []byte) (*RegistrationRequest, error) {
	var msg RegisterAppInterfaceMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	req := &RegistrationRequest{
		ConnectionKey: msg.Params.ConnectionKey,
		CorrelationID: msg.Params.CorrelationID,
		AppID:         strings.TrimSpace(msg.MsgParams.AppID),
		AppName:       msg.MsgParams.AppName,
		Device:        msg.Params.Device,
	}

	vr, err := ParseLanguage(msg.MsgParams.LanguageDesired)
	if err != nil {
		return req, fmt.Errorf("%w: language_desired: %w", ErrInvalidRequest, err)
	}

	ui, err := ParseLanguage(msg.MsgParams.HMIDisplayLanguageDesired)
	if err != nil {
		return req, fmt.Errorf("%w: hmi_display_language_desired: %w", ErrInvalidRequest, err)
	}

	types, err := ParseHMITypes(msg.MsgParams.AppHMIType)
	if err != nil {
		return req, fmt.Errorf("%w: app_hmi_type: %w", ErrInvalidRequest, err)
	}

	req.VRLanguage = vr
	req.UILanguage = ui
	req.HMITypes = types

	return req, nil
}

// ConsentDecision is the policy verdict for a device.
type ConsentDecision string

const (
	ConsentUnknown    ConsentDecision = "UNKNOWN"
	ConsentAllowed    ConsentDecision = "ALLOWED"
	ConsentDisallowed ConsentDecision = "DISALLOWED"
)

// ResultCode is the mobile-facing result of RegisterAppInterface.
type ResultCode string

const (
	ResultSuccess                      ResultCode = "SUCCESS"
	ResultWarnings                     ResultCode = "WARNINGS"
	ResultDisallowed                   ResultCode = "DISALLOWED"
	ResultApplicationRegisteredAlready ResultCode = "APPLICATION_REGISTERED_ALREADY"
	ResultInvalidData                  ResultCode = "INVALID_DATA"
)

// Registered reports whether the code leaves an Application in the registry.
func (c ResultCode) Registered() bool {
	switch c {
	case ResultSuccess, ResultWarnings, ResultDisallowed:
		return true
	case ResultApplicationRegisteredAlready, ResultInvalidData:
		return false
	default:
		return false
	}
}

// VehicleInfo is the static vehicle description discovered from the HMI.
type VehicleInfo struct {
	Make      string `json:"make,omitempty"`
	Model     string `json:"model,omitempty"`
	ModelYear string `json:"model_year,omitempty"`
	Trim      string `json:"trim,omitempty"`
}

// CapabilitySnapshot is what the HMI currently reports about itself.
type CapabilitySnapshot struct {
	ActiveUILanguage   Language    `json:"active_ui_language"`
	ActiveVRLanguage   Language    `json:"active_vr_language"`
	SupportedLanguages []Language  `json:"supported_languages,omitempty"`
	CCPUVersion        string      `json:"ccpu_version,omitempty"`
	Vehicle            VehicleInfo `json:"vehicle_info"`
}

// DefaultCapabilitySnapshot is used when the HMI has not reported anything.
func DefaultCapabilitySnapshot() CapabilitySnapshot {
	return CapabilitySnapshot{
		ActiveUILanguage: DefaultLanguage,
		ActiveVRLanguage: DefaultLanguage,
	}
}
