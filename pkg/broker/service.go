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

// Package broker wires the registration flow to the HMI bus.
package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/carverauto/hmibroker/pkg/capabilities"
	"github.com/carverauto/hmibroker/pkg/hmi"
	"github.com/carverauto/hmibroker/pkg/kv"
	"github.com/carverauto/hmibroker/pkg/lifecycle"
	"github.com/carverauto/hmibroker/pkg/logger"
	"github.com/carverauto/hmibroker/pkg/models"
	"github.com/carverauto/hmibroker/pkg/natsutil"
	"github.com/carverauto/hmibroker/pkg/policy"
	"github.com/carverauto/hmibroker/pkg/registration"
	"github.com/carverauto/hmibroker/pkg/registry"
	"github.com/carverauto/hmibroker/pkg/resumption"
	"github.com/carverauto/hmibroker/pkg/version"
)

var (
	errNilConfig      = errors.New("config is required")
	errAlreadyStarted = errors.New("service already started")
)

// Service owns the bus connection and every registration component.
type Service struct {
	cfg    *Config
	logger logger.Logger

	registry     *registry.ApplicationRegistry
	capabilities *capabilities.Store
	gate         policy.Gate

	mu         sync.Mutex
	nc         *nats.Conn
	resumption *resumption.Controller
	orch       *registration.Orchestrator
	subs       []*nats.Subscription

	ctx      context.Context
	cancel   context.CancelFunc
	inFlight chan struct{}

	// admitMu orders wg.Add in onRegister before wg.Wait in Stop.
	admitMu  sync.Mutex
	draining bool
	wg       sync.WaitGroup
}

// New validates cfg and builds the in-process components. Nothing touches
// the bus until Start.
func New(cfg *Config, log logger.Logger) (*Service, error) {
	if cfg == nil {
		return nil, errNilConfig
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	caps := capabilities.NewStore()
	if cfg.Capabilities != nil {
		caps.Set(*cfg.Capabilities)
	}

	var gate policy.Gate = policy.NewStaticGate(cfg.Policy)
	if cfg.Policy != nil {
		gate = policy.NewCachedGate(gate, time.Duration(cfg.Policy.CacheTTL))
	}

	return &Service{
		cfg:          cfg,
		logger:       log,
		registry:     registry.NewApplicationRegistry(),
		capabilities: caps,
		gate:         gate,
		inFlight:     make(chan struct{}, cfg.MaxInFlight),
	}, nil
}

// Registry exposes the live application registry.
func (s *Service) Registry() *registry.ApplicationRegistry {
	return s.registry
}

// Start connects to the bus and subscribes to registration traffic.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nc != nil {
		return errAlreadyStarted
	}

	nc, err := natsutil.Connect(ctx, &s.cfg.NATS, lifecycle.Child(s.logger, "nats"))
	if err != nil {
		return err
	}

	store, err := s.resumptionStore(ctx, nc)
	if err != nil {
		nc.Close()
		return err
	}

	s.resumption = resumption.NewController(store, s.registry,
		lifecycle.Child(s.logger, "resumption"), time.Duration(s.cfg.Resumption.Timeout))

	notifier := hmi.NewNatsNotifier(nc, s.cfg.NATS.HMIPrefix, s.cfg.NATS.MobilePrefix,
		lifecycle.Child(s.logger, "hmi"))

	s.orch, err = registration.NewOrchestrator(registration.Dependencies{
		Registry:     s.registry,
		Policy:       s.gate,
		Capabilities: s.capabilities,
		Resumption:   s.resumption,
		Notifier:     notifier,
	}, &s.cfg.Registration, lifecycle.Child(s.logger, "registration"))
	if err != nil {
		nc.Close()
		return err
	}

	s.ctx, s.cancel = context.WithCancel(context.WithoutCancel(ctx))
	s.nc = nc

	s.admitMu.Lock()
	s.draining = false
	s.admitMu.Unlock()

	handlers := map[string]nats.MsgHandler{
		s.cfg.RegisterSubject():         s.onRegister,
		s.cfg.ConnectionClosedSubject(): s.onConnectionClosed,
		s.cfg.NATS.CapabilitiesSubject:  s.onCapabilities,
	}

	for subject, handler := range handlers {
		sub, err := nc.Subscribe(subject, handler)
		if err != nil {
			s.closeLocked()
			return fmt.Errorf("failed to subscribe to %s: %w", subject, err)
		}

		s.subs = append(s.subs, sub)
	}

	if err := nc.Flush(); err != nil {
		s.closeLocked()
		return fmt.Errorf("failed to flush subscriptions: %w", err)
	}

	s.logger.Info().
		Str("register_subject", s.cfg.RegisterSubject()).
		Str("closed_subject", s.cfg.ConnectionClosedSubject()).
		Str("capabilities_subject", s.cfg.NATS.CapabilitiesSubject).
		Str("version", version.Version()).
		Msg("hmibroker started")

	return nil
}

func (s *Service) resumptionStore(ctx context.Context, nc *nats.Conn) (resumption.Store, error) {
	if s.cfg.Resumption.Bucket == "" {
		s.logger.Info().Msg("No resumption bucket configured, keeping resumption state in memory")

		return resumption.NewMemoryStore(), nil
	}

	kvStore, err := kv.NewNatsStore(ctx, nc, s.cfg.Resumption.Bucket, time.Duration(s.cfg.Resumption.TTL))
	if err != nil {
		return nil, fmt.Errorf("failed to open resumption bucket: %w", err)
	}

	return resumption.NewKVStore(kvStore), nil
}

// Stop drains subscriptions, waits for in-flight work, persists every live
// application and closes the connection.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nc == nil {
		return nil
	}

	var errs []error

	for _, sub := range s.subs {
		if err := sub.Unsubscribe(); err != nil && !errors.Is(err, nats.ErrConnectionClosed) {
			errs = append(errs, err)
		}
	}

	s.subs = nil

	s.admitMu.Lock()
	s.draining = true
	s.admitMu.Unlock()

	s.wg.Wait()
	s.resumption.Wait()

	for _, app := range s.registry.Snapshot() {
		if app.Consent == models.ConsentDisallowed {
			continue
		}

		if err := s.resumption.Persist(ctx, app); err != nil {
			errs = append(errs, fmt.Errorf("persist %s: %w", app.AppID, err))
		}
	}

	s.closeLocked()

	s.logger.Info().Msg("hmibroker stopped")

	return errors.Join(errs...)
}

func (s *Service) closeLocked() {
	if s.cancel != nil {
		s.cancel()
	}

	for _, sub := range s.subs {
		_ = sub.Unsubscribe()
	}

	s.subs = nil

	if s.nc != nil {
		s.nc.Close()
		s.nc = nil
	}
}

// admit reserves a slot in the in-flight group unless Stop has begun.
func (s *Service) admit() bool {
	s.admitMu.Lock()
	defer s.admitMu.Unlock()

	if s.draining {
		return false
	}

	s.wg.Add(1)

	return true
}

// onRegister runs each registration on its own goroutine, at most
// max_in_flight at a time. Requests arriving after Stop are dropped.
func (s *Service) onRegister(msg *nats.Msg) {
	if !s.admit() {
		s.logger.Debug().Msg("Dropping registration received during shutdown")
		return
	}

	data := append([]byte(nil), msg.Data...)

	go func() {
		defer s.wg.Done()

		select {
		case s.inFlight <- struct{}{}:
		case <-s.ctx.Done():
			return
		}
		defer func() { <-s.inFlight }()

		out := s.orch.HandleMessage(s.ctx, data)
		if out.ResponseErr != nil {
			s.logger.Warn().Err(out.ResponseErr).Str("result", string(out.Code)).Msg("Registration response not delivered")
		}
	}()
}

type connectionClosed struct {
	ConnectionKey uint32 `json:"connection_key"`
}

// onConnectionClosed saves resumption state and drops the application.
// State stored for an application with refused device consent is discarded.
func (s *Service) onConnectionClosed(msg *nats.Msg) {
	var evt connectionClosed
	if err := json.Unmarshal(msg.Data, &evt); err != nil || evt.ConnectionKey == 0 {
		s.logger.Warn().Err(err).Msg("Ignoring malformed connection.closed event")
		return
	}

	app, ok := s.registry.Get(evt.ConnectionKey)
	if !ok {
		return
	}

	if app.Consent == models.ConsentDisallowed {
		if err := s.resumption.Forget(s.ctx, app.AppID); err != nil {
			s.logger.Warn().Err(err).Str("app_id", app.AppID).Msg("Failed to drop resumption state")
		}
	} else if err := s.resumption.Persist(s.ctx, app); err != nil {
		s.logger.Warn().Err(err).Str("app_id", app.AppID).Msg("Failed to persist resumption state")
	}

	s.registry.Remove(evt.ConnectionKey)

	s.logger.Info().
		Uint32("connection_key", evt.ConnectionKey).
		Str("app_id", app.AppID).
		Msg("Application unregistered")
}

// onCapabilities stores a capability snapshot. An empty message marks the
// HMI capabilities as unknown.
func (s *Service) onCapabilities(msg *nats.Msg) {
	if len(msg.Data) == 0 {
		s.capabilities.Reset()
		return
	}

	if err := s.capabilities.SetJSON(msg.Data); err != nil {
		s.logger.Warn().Err(err).Msg("Ignoring capability update")
		return
	}

	s.logger.Debug().Msg("HMI capabilities updated")
}
