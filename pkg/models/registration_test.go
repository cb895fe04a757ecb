package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrationRequestValidate(t *testing.T) {
	valid := RegistrationRequest{ConnectionKey: 1, AppID: "test_app_id", AppName: "test_app_name_"}

	tests := []struct {
		name    string
		mutate  func(r *RegistrationRequest)
		wantErr error
	}{
		{name: "valid", mutate: func(*RegistrationRequest) {}},
		{name: "missing connection key", mutate: func(r *RegistrationRequest) { r.ConnectionKey = 0 }, wantErr: errMissingConnectionKey},
		{name: "missing app id", mutate: func(r *RegistrationRequest) { r.AppID = "  " }, wantErr: errMissingAppID},
		{name: "missing app name", mutate: func(r *RegistrationRequest) { r.AppName = "" }, wantErr: errMissingAppName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, ErrInvalidRequest)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	var nilReq *RegistrationRequest
	require.ErrorIs(t, nilReq.Validate(), ErrInvalidRequest)
}

func TestDecodeRegistrationRequest(t *testing.T) {
	data := []byte(`{
		"params": {"connection_key": 1, "correlation_id": 12, "device": {"id": "dev-1", "mac_address": "aa:bb"}},
		"msg_params": {
			"app_id": " test_app_id ",
			"app_name": "test_app_name_",
			"language_desired": "EN_US",
			"hmi_display_language_desired": "de-de",
			"app_hmi_type": ["MEDIA", "media", "NAVIGATION"]
		}
	}`)

	req, err := DecodeRegistrationRequest(data)
	require.NoError(t, err)
	require.NoError(t, req.Validate())

	assert.Equal(t, uint32(1), req.ConnectionKey)
	assert.Equal(t, uint32(12), req.CorrelationID)
	assert.Equal(t, "test_app_id", req.AppID)
	assert.Equal(t, LanguageEnUS, req.VRLanguage)
	assert.Equal(t, LanguageDeDE, req.UILanguage)
	assert.Equal(t, []HMIType{HMITypeMedia, HMITypeNavigation}, req.HMITypes)
	assert.Equal(t, "aa:bb", req.Device.Key())
}

func TestDecodeRegistrationRequestErrors(t *testing.T) {
	_, err := DecodeRegistrationRequest([]byte(`{not json`))
	require.ErrorIs(t, err, ErrInvalidRequest)

	req, err := DecodeRegistrationRequest([]byte(`{"params":{"connection_key":4},"msg_params":{"language_desired":"KLINGON"}}`))
	require.ErrorIs(t, err, ErrInvalidRequest)
	require.NotNil(t, req)
	assert.Equal(t, uint32(4), req.ConnectionKey)

	_, err = DecodeRegistrationRequest([]byte(`{"params":{"connection_key":4},"msg_params":{"app_hmi_type":["WIDGET"]}}`))
	require.ErrorIs(t, err, ErrInvalidRequest)
}

func TestParseLanguage(t *testing.T) {
	l, err := ParseLanguage("")
	require.NoError(t, err)
	assert.True(t, l.IsZero())

	l, err = ParseLanguage("fr_ca")
	require.NoError(t, err)
	assert.Equal(t, LanguageFrCA, l)

	_, err = ParseLanguage("XX-YY")
	require.Error(t, err)

	var decoded struct {
		L Language `json:"l"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"l":"en_gb"}`), &decoded))
	assert.Equal(t, LanguageEnGB, decoded.L)
}

func TestResultCodeRegistered(t *testing.T) {
	assert.True(t, ResultSuccess.Registered())
	assert.True(t, ResultWarnings.Registered())
	assert.True(t, ResultDisallowed.Registered())
	assert.False(t, ResultApplicationRegisteredAlready.Registered())
	assert.False(t, ResultInvalidData.Registered())
}

func TestApplicationClone(t *testing.T) {
	app := &Application{
		ConnectionKey: 3,
		HMITypes:      []HMIType{HMITypeMedia},
		Buttons:       []ButtonName{ButtonOK},
		RegisteredAt:  time.Unix(10, 0),
	}

	c := app.Clone()
	c.HMITypes[0] = HMITypeSocial
	c.Buttons = append(c.Buttons, ButtonCustom)

	assert.Equal(t, HMITypeMedia, app.HMITypes[0])
	assert.Len(t, app.Buttons, 1)
	assert.Nil(t, (*Application)(nil).Clone())
}

func TestDurationJSON(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"1m30s"`), &d))
	assert.Equal(t, 90*time.Second, time.Duration(d))

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"1m30s"`, string(out))
}
