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

// Package policy is a read-only view of the policy subsystem as needed by
// application registration.
package policy

//go:generate mockgen -destination=mock_policy.go -package=policy github.com/carverauto/hmibroker/pkg/policy Gate

import (
	"context"
	"errors"

	"github.com/carverauto/hmibroker/pkg/models"
)

// ErrPolicyUnavailable is wrapped by every Gate failure.
var ErrPolicyUnavailable = errors.New("policy subsystem unavailable")

// AppData is the initial metadata the policy table holds for an app id.
type AppData struct {
	RequestTypes []string         `json:"request_types,omitempty"`
	HMITypes     []models.HMIType `json:"app_hmi_type,omitempty"`
}

// Gate answers the policy questions asked during registration.
type Gate interface {
	// IsEnabled reports whether policy enforcement is active at all.
	IsEnabled(ctx context.Context) (bool, error)
	// GetConsent returns the user consent recorded for a device.
	GetConsent(ctx context.Context, deviceID string) (models.ConsentDecision, error)
	// GetInitialAppData returns the app's policy metadata. ok is false when
	// the policy table has no complete record for appID.
	GetInitialAppData(ctx context.Context, appID string) (data AppData, ok bool, err error)
}
