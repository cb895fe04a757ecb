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

package logger

import (
	"os"
	"strconv"
)

// Environment overrides consulted by DefaultConfig.
const (
	EnvLogLevel  = "HMIBROKER_LOG_LEVEL"
	EnvLogDebug  = "HMIBROKER_LOG_DEBUG"
	EnvLogOutput = "HMIBROKER_LOG_OUTPUT"
)

// DefaultConfig is used when the service config carries no logging section.
func DefaultConfig() *Config {
	cfg := &Config{
		Level:  "info",
		Output: "stdout",
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Level = v
	}

	if v := os.Getenv(EnvLogOutput); v != "" {
		cfg.Output = v
	}

	if v, err := strconv.ParseBool(os.Getenv(EnvLogDebug)); err == nil {
		cfg.Debug = v
	}

	return cfg
}
