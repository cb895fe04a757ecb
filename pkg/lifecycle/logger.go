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

package lifecycle

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/carverauto/hmibroker/pkg/logger"
)

// InitializeLogger configures the process-wide logger. A nil config falls
// back to logger.DefaultConfig.
func InitializeLogger(config *logger.Config) error {
	if config == nil {
		config = logger.DefaultConfig()
	}

	if err := logger.Init(config); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

// LoggerImpl is a logger.Logger over its own zerolog instance.
type LoggerImpl struct {
	zl zerolog.Logger
}

var _ logger.Logger = (*LoggerImpl)(nil)

// NewLoggerImpl builds a logger from config without touching global state.
func NewLoggerImpl(config *logger.Config) (*LoggerImpl, error) {
	if config == nil {
		config = logger.DefaultConfig()
	}

	level, err := config.ParseLevel()
	if err != nil {
		return nil, err
	}

	zerolog.TimeFieldFormat = time.RFC3339
	if config.TimeFormat != "" {
		zerolog.TimeFieldFormat = config.TimeFormat
	}

	return &LoggerImpl{
		zl: zerolog.New(config.Writer()).Level(level).With().Timestamp().Logger(),
	}, nil
}

func (l *LoggerImpl) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *LoggerImpl) Info() *zerolog.Event  { return l.zl.Info() }
func (l *LoggerImpl) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *LoggerImpl) Error() *zerolog.Event { return l.zl.Error() }
func (l *LoggerImpl) With() zerolog.Context { return l.zl.With() }

func (l *LoggerImpl) WithComponent(component string) zerolog.Logger {
	return l.zl.With().Str("component", component).Logger()
}

// CreateComponentLogger builds a logger tagged with component.
func CreateComponentLogger(component string, config *logger.Config) (logger.Logger, error) {
	base, err := NewLoggerImpl(config)
	if err != nil {
		return nil, err
	}

	return &LoggerImpl{zl: base.WithComponent(component)}, nil
}

// Child derives a logger for a sub-component sharing the same sink.
func Child(parent logger.Logger, component string) logger.Logger {
	return &LoggerImpl{zl: parent.WithComponent(component)}
}
