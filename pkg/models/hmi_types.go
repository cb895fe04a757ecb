package models

import (
	"errors"
	"fmt"
	"strings"
)

var errUnknownHMIType = errors.New("unknown app hmi type")

// HMIType categorizes how the HMI should present an application.
type HMIType string

const (
	HMITypeDefault           HMIType = "DEFAULT"
	HMITypeCommunication     HMIType = "COMMUNICATION"
	HMITypeMedia             HMIType = "MEDIA"
	HMITypeMessaging         HMIType = "MESSAGING"
	HMITypeNavigation        HMIType = "NAVIGATION"
	HMITypeInformation       HMIType = "INFORMATION"
	HMITypeSocial            HMIType = "SOCIAL"
	HMITypeBackgroundProcess HMIType = "BACKGROUND_PROCESS"
	HMITypeTesting           HMIType = "TESTING"
	HMITypeSystem            HMIType = "SYSTEM"
	HMITypeProjection        HMIType = "PROJECTION"
	HMITypeRemoteControl     HMIType = "REMOTE_CONTROL"
)

// ParseHMIType maps a wire or policy tag onto an HMIType.
func ParseHMIType(raw string) (HMIType, error) {
	t := HMIType(strings.ToUpper(strings.TrimSpace(raw)))

	switch t {
	case HMITypeDefault, HMITypeCommunication, HMITypeMedia, HMITypeMessaging,
		HMITypeNavigation, HMITypeInformation, HMITypeSocial, HMITypeBackgroundProcess,
		HMITypeTesting, HMITypeSystem, HMITypeProjection, HMITypeRemoteControl:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", errUnknownHMIType, raw)
	}
}

// ParseHMITypes parses a list of tags, dropping duplicates while keeping order.
func ParseHMITypes(raw []string) ([]HMIType, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	out := make([]HMIType, 0, len(raw))
	seen := make(map[HMIType]struct{}, len(raw))

	for _, r := range raw {
		t, err := ParseHMIType(r)
		if err != nil {
			return nil, err
		}

		if _, dup := seen[t]; dup {
			continue
		}

		seen[t] = struct{}{}
		out = append(out, t)
	}

	return out, nil
}

// HMILevel is the visibility level the HMI grants an application.
type HMILevel string

const (
	HMILevelNone       HMILevel = "NONE"
	HMILevelBackground HMILevel = "BACKGROUND"
	HMILevelLimited    HMILevel = "LIMITED"
	HMILevelFull       HMILevel = "FULL"
)

// ButtonName identifies a hard or soft button on the head unit.
type ButtonName string

const (
	ButtonCustom    ButtonName = "CUSTOM_BUTTON"
	ButtonOK        ButtonName = "OK"
	ButtonSeekLeft  ButtonName = "SEEKLEFT"
	ButtonSeekRight ButtonName = "SEEKRIGHT"
	ButtonTuneUp    ButtonName = "TUNEUP"
	ButtonTuneDown  ButtonName = "TUNEDOWN"
	ButtonPlayPause ButtonName = "PLAY_PAUSE"
)

// DefaultButtonSubscriptions are subscribed on behalf of every new application.
func DefaultButtonSubscriptions() []ButtonName {
	return []ButtonName{ButtonCustom}
}

// TransportType identifies how the device is connected.
type TransportType string

const (
	TransportUnknown   TransportType = ""
	TransportWiFi      TransportType = "WIFI"
	TransportBluetooth TransportType = "BLUETOOTH"
	TransportUSB       TransportType = "USB_AOA"
	TransportIAP       TransportType = "USB_IAP"
)
