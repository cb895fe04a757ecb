package hmi

import (
	"github.com/carverauto/hmibroker/pkg/models"
)

// AppInfo is the public view of an Application shown to the HMI.
type AppInfo struct {
	AppID              uint32           `json:"appID"`
	PolicyAppID        string           `json:"policyAppID"`
	AppName            string           `json:"appName"`
	Icon               string           `json:"icon,omitempty"`
	HMITypes           []models.HMIType `json:"appType,omitempty"`
	RequestTypes       []string         `json:"requestType,omitempty"`
	Language           models.Language  `json:"language"`
	HMIDisplayLanguage models.Language  `json:"hmiDisplayLanguageDesired"`
	Device             DeviceInfo       `json:"deviceInfo"`
}

// DeviceInfo is the HMI view of the device an application runs on.
type DeviceInfo struct {
	ID            string               `json:"id"`
	Name          string               `json:"name,omitempty"`
	TransportType models.TransportType `json:"transportType,omitempty"`
	IsSDLAllowed  bool                 `json:"isSDLAllowed"`
}

// NewAppInfo builds the HMI view of app.
func NewAppInfo(app *models.Application) AppInfo {
	if app == nil {
		return AppInfo{}
	}

	c := app.Clone()

	return AppInfo{
		AppID:              c.ConnectionKey,
		PolicyAppID:        c.AppID,
		AppName:            c.Name,
		Icon:               c.IconPath,
		HMITypes:           c.HMITypes,
		RequestTypes:       c.RequestTypes,
		Language:           c.VRLanguage,
		HMIDisplayLanguage: c.UILanguage,
		Device: DeviceInfo{
			ID:            c.Device.Key(),
			Name:          c.Device.Name,
			TransportType: c.Device.TransportType,
			IsSDLAllowed:  c.Consent != models.ConsentDisallowed,
		},
	}
}

// OnAppRegistered announces a new application to the HMI.
type OnAppRegistered struct {
	Application AppInfo `json:"application"`
	Resumed     bool    `json:"resumeVrGrammars"`
}

func (OnAppRegistered) FunctionID() FunctionID { return FunctionOnAppRegistered }

// OnButtonSubscription subscribes or unsubscribes one button for an application.
type OnButtonSubscription struct {
	AppID        uint32            `json:"appID"`
	Name         models.ButtonName `json:"name"`
	IsSubscribed bool              `json:"isSubscribed"`
}

func (OnButtonSubscription) FunctionID() FunctionID { return FunctionOnButtonSubscription }

// ChangeRegistration asks the HMI to re-register an application with the
// languages the head unit is actually using.
type ChangeRegistration struct {
	AppID              uint32          `json:"appID"`
	Language           models.Language `json:"language"`
	HMIDisplayLanguage models.Language `json:"hmiDisplayLanguage"`
}

func (ChangeRegistration) FunctionID() FunctionID { return FunctionChangeRegistration }

// RegisterAppInterfaceResponse is the single terminal response to the mobile client.
type RegisterAppInterfaceResponse struct {
	ConnectionKey      uint32              `json:"connection_key"`
	CorrelationID      uint32              `json:"correlation_id"`
	Success            bool                `json:"success"`
	ResultCode         models.ResultCode   `json:"result_code"`
	Info               string              `json:"info,omitempty"`
	Language           models.Language     `json:"language,omitempty"`
	HMIDisplayLanguage models.Language     `json:"hmi_display_language,omitempty"`
	HMITypes           []models.HMIType    `json:"app_hmi_type,omitempty"`
	SupportedDiagModes []uint32            `json:"supported_diag_modes,omitempty"`
	SDLVersion         string              `json:"sdl_version,omitempty"`
	CCPUVersion        string              `json:"system_software_version,omitempty"`
	VehicleType        *models.VehicleInfo `json:"vehicle_type,omitempty"`
}

func (*RegisterAppInterfaceResponse) FunctionID() FunctionID { return FunctionRegisterAppInterface }
