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

package hmi

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carverauto/hmibroker/pkg/logger"
)

const (
	DefaultHMIPrefix    = "hmi"
	DefaultMobilePrefix = "mobile"
)

// Envelope wraps every message published on the bus.
type Envelope struct {
	ID            string     `json:"id"`
	CorrelationID uint32     `json:"correlation_id,omitempty"`
	Function      FunctionID `json:"function"`
	Time          time.Time  `json:"time"`
	Payload       any        `json:"payload"`
}

// Publisher is the subset of *nats.Conn used for core publishing.
type Publisher interface {
	Publish(subj string, data []byte) error
}

// NatsNotifier publishes HMI messages on <hmiPrefix>.<FunctionID> and client
// responses on <mobilePrefix>.<connection_key>.response.
type NatsNotifier struct {
	pub          Publisher
	hmiPrefix    string
	mobilePrefix string
	logger       logger.Logger
	now          func() time.Time
}

// NewNatsNotifier returns a notifier publishing through pub.
func NewNatsNotifier(pub Publisher, hmiPrefix, mobilePrefix string, log logger.Logger) *NatsNotifier {
	if hmiPrefix == "" {
		hmiPrefix = DefaultHMIPrefix
	}

	if mobilePrefix == "" {
		mobilePrefix = DefaultMobilePrefix
	}

	return &NatsNotifier{
		pub:          pub,
		hmiPrefix:    strings.TrimSuffix(hmiPrefix, "."),
		mobilePrefix: strings.TrimSuffix(mobilePrefix, "."),
		logger:       log,
		now:          time.Now,
	}
}

// HMISubject returns the subject fn is published on.
func (n *NatsNotifier) HMISubject(fn FunctionID) string {
	return n.hmiPrefix + "." + string(fn)
}

// ResponseSubject returns the subject responses for connectionKey go to.
func (n *NatsNotifier) ResponseSubject(connectionKey uint32) string {
	return fmt.Sprintf("%s.%d.response", n.mobilePrefix, connectionKey)
}

// SendHMI implements Notifier.
func (n *NatsNotifier) SendHMI(ctx context.Context, msg Message) bool {
	if msg == nil {
		return false
	}

	corrID, _ := CorrelationIDFrom(ctx)
	subject := n.HMISubject(msg.FunctionID())

	if err := n.publish(subject, corrID, msg); err != nil {
		n.logger.Warn().Err(err).
			Str("subject", subject).
			Str("function", string(msg.FunctionID())).
			Msg("HMI message not submitted")

		return false
	}

	n.logger.Debug().Str("subject", subject).Msg("HMI message submitted")

	return true
}

// SendClientResponse implements Notifier.
func (n *NatsNotifier) SendClientResponse(_ context.Context, resp *RegisterAppInterfaceResponse) error {
	if resp == nil {
		return fmt.Errorf("%w: %w", ErrResponseNotSent, errNilResponse)
	}

	subject := n.ResponseSubject(resp.ConnectionKey)

	if err := n.publish(subject, resp.CorrelationID, resp); err != nil {
		return fmt.Errorf("%w: %w", ErrResponseNotSent, err)
	}

	return nil
}

func (n *NatsNotifier) publish(subject string, corrID uint32, msg Message) error {
	env := Envelope{
		ID:            uuid.New().String(),
		CorrelationID: corrID,
		Function:      msg.FunctionID(),
		Time:          n.now().UTC(),
		Payload:       msg,
	}

	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", env.Function, err)
	}

	if err := n.pub.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish %s: %w", env.Function, err)
	}

	return nil
}

type correlationKey struct{}

// WithCorrelationID attaches the mobile correlation id to ctx so HMI traffic
// caused by a request can be tied back to it.
func WithCorrelationID(ctx context.Context, id uint32) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

// CorrelationIDFrom returns the correlation id stored by WithCorrelationID.
func CorrelationIDFrom(ctx context.Context) (uint32, bool) {
	if ctx == nil {
		return 0, false
	}

	id, ok := ctx.Value(correlationKey{}).(uint32)

	return id, ok
}
