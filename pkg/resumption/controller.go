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

// Package resumption restores persisted application state when a known
// application registers again.
package resumption

//go:generate mockgen -destination=mock_resumption.go -package=resumption github.com/carverauto/hmibroker/pkg/resumption Restorer

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/carverauto/hmibroker/pkg/logger"
	"github.com/carverauto/hmibroker/pkg/models"
)

const defaultRestoreTimeout = 10 * time.Second

// Restorer is what the registration flow needs from resumption.
type Restorer interface {
	// RestoreFor schedules restoration and returns immediately.
	RestoreFor(ctx context.Context, appID string, connectionKey uint32)
}

// Registry is the subset of the application registry resumption writes to.
type Registry interface {
	Update(key uint32, fn func(app *models.Application)) bool
}

// Config is the resumption section of the service configuration.
type Config struct {
	Bucket  string          `json:"bucket"`
	TTL     models.Duration `json:"ttl"`
	Timeout models.Duration `json:"timeout"`
}

// Controller restores and persists application state.
type Controller struct {
	store    Store
	registry Registry
	logger   logger.Logger
	timeout  time.Duration
	now      func() time.Time

	wg sync.WaitGroup
}

var _ Restorer = (*Controller)(nil)

// NewController wires a controller. timeout bounds each background restore;
// zero selects a default.
func NewController(store Store, registry Registry, log logger.Logger, timeout time.Duration) *Controller {
	if timeout <= 0 {
		timeout = defaultRestoreTimeout
	}

	return &Controller{
		store:    store,
		registry: registry,
		logger:   log,
		timeout:  timeout,
		now:      time.Now,
	}
}

// RestoreFor dispatches restoration of appID onto connectionKey. The
// caller's cancellation does not abort the restore; the timeout does.
func (c *Controller) RestoreFor(ctx context.Context, appID string, connectionKey uint32) {
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		restoreCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()

		c.restore(restoreCtx, appID, connectionKey)
	}()
}

func (c *Controller) restore(ctx context.Context, appID string, connectionKey uint32) {
	state, found, err := c.store.Load(ctx, appID)
	if err != nil {
		c.logger.Warn().
			Err(err).
			Str("app_id", appID).
			Uint32("connection_key", connectionKey).
			Msg("Failed to load resumption state")

		return
	}

	if !found {
		c.logger.Debug().
			Str("app_id", appID).
			Uint32("connection_key", connectionKey).
			Msg("No resumption state stored")

		return
	}

	if normalizeAppID(state.AppID) != normalizeAppID(appID) {
		c.logger.Warn().
			Str("app_id", appID).
			Str("stored_app_id", state.AppID).
			Uint32("connection_key", connectionKey).
			Msg("Discarding resumption state stored for another application")

		return
	}

	applied := false

	ok := c.registry.Update(connectionKey, func(app *models.Application) {
		if !strings.EqualFold(app.AppID, appID) {
			return
		}

		applyState(app, state)
		applied = true
	})

	if !ok || !applied {
		c.logger.Info().
			Str("app_id", appID).
			Uint32("connection_key", connectionKey).
			Msg("Application gone before resumption completed")

		return
	}

	c.logger.Info().
		Str("app_id", appID).
		Uint32("connection_key", connectionKey).
		Str("hmi_level", string(state.HMILevel)).
		Time("saved_at", state.SavedAt).
		Msg("Resumed application state")
}

func applyState(app *models.Application, state *State) {
	if state.HMILevel != "" {
		app.HMILevel = state.HMILevel
	}

	if app.IconPath == "" {
		app.IconPath = state.IconPath
	}

	app.Buttons = mergeButtons(app.Buttons, state.Buttons)
	app.Resumed = true
}

func mergeButtons(current, restored []models.ButtonName) []models.ButtonName {
	seen := make(map[models.ButtonName]struct{}, len(current)+len(restored))
	out := make([]models.ButtonName, 0, len(current)+len(restored))

	for _, list := range [][]models.ButtonName{current, restored} {
		for _, b := range list {
			if _, dup := seen[b]; dup {
				continue
			}

			seen[b] = struct{}{}
			out = append(out, b)
		}
	}

	return out
}

// Persist saves app so a later registration with the same app id resumes it.
func (c *Controller) Persist(ctx context.Context, app *models.Application) error {
	if app == nil || app.AppID == "" {
		return nil
	}

	if err := c.store.Save(ctx, StateFromApplication(app, c.now())); err != nil {
		return err
	}

	c.logger.Debug().
		Str("app_id", app.AppID).
		Uint32("connection_key", app.ConnectionKey).
		Msg("Persisted resumption state")

	return nil
}

// Forget drops stored state for appID.
func (c *Controller) Forget(ctx context.Context, appID string) error {
	return c.store.Delete(ctx, appID)
}

// Wait blocks until every dispatched restore has finished.
func (c *Controller) Wait() {
	c.wg.Wait()
}
