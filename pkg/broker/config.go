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

package broker

import (
	"errors"
	"fmt"
	"time"

	"github.com/carverauto/hmibroker/pkg/hmi"
	"github.com/carverauto/hmibroker/pkg/logger"
	"github.com/carverauto/hmibroker/pkg/models"
	"github.com/carverauto/hmibroker/pkg/policy"
	"github.com/carverauto/hmibroker/pkg/registration"
	"github.com/carverauto/hmibroker/pkg/resumption"
)

var (
	errNATSURLRequired   = errors.New("nats.url is required")
	errInvalidInFlight   = errors.New("max_in_flight must not be negative")
	errInvalidButtonName = errors.New("registration.default_buttons contains an empty name")
)

const (
	defaultServiceName   = "hmibroker"
	defaultMaxInFlight   = 16
	defaultResumptionTTL = 72 * time.Hour
)

// Config is the hmibroker service configuration.
type Config struct {
	ServiceName  string                     `json:"service_name"`
	Logging      *logger.Config             `json:"logging,omitempty"`
	NATS         models.NATSConfig          `json:"nats"`
	Policy       *policy.Config             `json:"policy,omitempty"`
	Capabilities *models.CapabilitySnapshot `json:"capabilities,omitempty"`
	Resumption   resumption.Config          `json:"resumption"`
	Registration registration.Config        `json:"registration"`
	MaxInFlight  int                        `json:"max_in_flight"`
}

// Validate implements config.Validator and fills defaults.
func (c *Config) Validate() error {
	if c.NATS.URL == "" {
		return errNATSURLRequired
	}

	if c.MaxInFlight < 0 {
		return errInvalidInFlight
	}

	for _, b := range c.Registration.DefaultButtons {
		if b == "" {
			return errInvalidButtonName
		}
	}

	if c.ServiceName == "" {
		c.ServiceName = defaultServiceName
	}

	if c.NATS.Name == "" {
		c.NATS.Name = c.ServiceName
	}

	if c.NATS.HMIPrefix == "" {
		c.NATS.HMIPrefix = hmi.DefaultHMIPrefix
	}

	if c.NATS.MobilePrefix == "" {
		c.NATS.MobilePrefix = hmi.DefaultMobilePrefix
	}

	if c.NATS.CapabilitiesSubject == "" {
		c.NATS.CapabilitiesSubject = c.NATS.HMIPrefix + ".capabilities"
	}

	if c.MaxInFlight == 0 {
		c.MaxInFlight = defaultMaxInFlight
	}

	if c.Resumption.Bucket != "" && time.Duration(c.Resumption.TTL) == 0 {
		c.Resumption.TTL = models.Duration(defaultResumptionTTL)
	}

	return nil
}

// RegisterSubject is where mobile sessions send RegisterAppInterface.
func (c *Config) RegisterSubject() string {
	return fmt.Sprintf("%s.%s", c.NATS.MobilePrefix, hmi.FunctionRegisterAppInterface)
}

// ConnectionClosedSubject announces transport disconnects.
func (c *Config) ConnectionClosedSubject() string {
	return c.NATS.MobilePrefix + ".connection.closed"
}
