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

// Package hmi carries registration traffic to the head unit and back to mobile.
package hmi

//go:generate mockgen -destination=mock_hmi.go -package=hmi github.com/carverauto/hmibroker/pkg/hmi Notifier

import (
	"context"
	"errors"
)

var (
	// ErrResponseNotSent is returned when the client response could not be submitted.
	ErrResponseNotSent = errors.New("client response not sent")

	errNilResponse = errors.New("nil response")
)

// FunctionID names an HMI RPC.
type FunctionID string

const (
	FunctionOnAppRegistered      FunctionID = "BasicCommunication.OnAppRegistered"
	FunctionOnButtonSubscription FunctionID = "Buttons.OnButtonSubscription"
	FunctionChangeRegistration   FunctionID = "UI.ChangeRegistration"
	FunctionRegisterAppInterface FunctionID = "RegisterAppInterface"
)

// Message is an outbound HMI notification or request.
type Message interface {
	FunctionID() FunctionID
}

// Notifier submits messages to the HMI bus and responses to the mobile client.
//
// SendHMI reports whether the message was submitted. It never waits for the
// HMI to acknowledge it.
type Notifier interface {
	SendHMI(ctx context.Context, msg Message) bool
	SendClientResponse(ctx context.Context, resp *RegisterAppInterfaceResponse) error
}
