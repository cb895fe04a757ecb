package models

import "time"

// DeviceInfo describes the phone a session originates from. It is filled
// in by the transport layer, never by the mobile application itself.
type DeviceInfo struct {
	ID            string        `json:"id"`
	Name          string        `json:"name,omitempty"`
	MACAddress    string        `json:"mac_address,omitempty"`
	TransportType TransportType `json:"transport_type,omitempty"`
}

// Key returns the identity used for device consent lookups. The MAC
// address is preferred, falling back to the transport device id.
func (d DeviceInfo) Key() string {
	if d.MACAddress != "" {
		return d.MACAddress
	}

	return d.ID
}

// Application is one registered client session.
type Application struct {
	ConnectionKey uint32          `json:"connection_key"`
	AppID         string          `json:"app_id"`
	Name          string          `json:"app_name"`
	Device        DeviceInfo      `json:"device"`
	IconPath      string          `json:"icon_path,omitempty"`
	HMITypes      []HMIType       `json:"app_hmi_type,omitempty"`
	RequestTypes  []string        `json:"request_types,omitempty"`
	UILanguage    Language        `json:"ui_language"`
	VRLanguage    Language        `json:"language"`
	Consent       ConsentDecision `json:"device_consent"`
	HMILevel      HMILevel        `json:"hmi_level"`
	Buttons       []ButtonName    `json:"subscribed_buttons,omitempty"`
	Resumed       bool            `json:"resumed"`
	RegisteredAt  time.Time       `json:"registered_at"`
}

// Clone returns a deep copy safe to hand across goroutines.
func (a *Application) Clone() *Application {
	if a == nil {
		return nil
	}

	c := *a

	if a.HMITypes != nil {
		c.HMITypes = append([]HMIType(nil), a.HMITypes...)
	}

	if a.RequestTypes != nil {
		c.RequestTypes = append([]string(nil), a.RequestTypes...)
	}

	if a.Buttons != nil {
		c.Buttons = append([]ButtonName(nil), a.Buttons...)
	}

	return &c
}
