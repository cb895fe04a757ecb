package hmi

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/hmibroker/internal/natstest"
	"github.com/carverauto/hmibroker/pkg/logger"
	"github.com/carverauto/hmibroker/pkg/models"
)

type rawEnvelope struct {
	ID            string          `json:"id"`
	CorrelationID uint32          `json:"correlation_id"`
	Function      FunctionID      `json:"function"`
	Time          time.Time       `json:"time"`
	Payload       json.RawMessage `json:"payload"`
}

var errPublish = errors.New("connection closed")

type failingPublisher struct{}

func (failingPublisher) Publish(string, []byte) error { return errPublish }

func testApp() *models.Application {
	return &models.Application{
		ConnectionKey: 1,
		AppID:         "test_app_id",
		Name:          "test_app_name_",
		Device:        models.DeviceInfo{ID: "dev-1", MACAddress: "aa:bb", Name: "phone"},
		HMITypes:      []models.HMIType{models.HMITypeMedia},
		UILanguage:    models.LanguageEnUS,
		VRLanguage:    models.LanguageEnUS,
		Consent:       models.ConsentAllowed,
	}
}

func TestNatsNotifierPublishesEnvelope(t *testing.T) {
	_, nc := natstest.Connect(t)

	sub, err := nc.SubscribeSync("hmi.>")
	require.NoError(t, err)
	require.NoError(t, nc.Flush())

	n := NewNatsNotifier(nc, "hmi", "mobile", logger.NewTestLogger())
	ctx := WithCorrelationID(context.Background(), 42)

	require.True(t, n.SendHMI(ctx, OnAppRegistered{Application: NewAppInfo(testApp())}))

	msg, err := sub.NextMsg(5 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, "hmi.BasicCommunication.OnAppRegistered", msg.Subject)

	var env rawEnvelope
	require.NoError(t, json.Unmarshal(msg.Data, &env))

	_, err = uuid.Parse(env.ID)
	require.NoError(t, err)
	assert.Equal(t, uint32(42), env.CorrelationID)
	assert.Equal(t, FunctionOnAppRegistered, env.Function)
	assert.False(t, env.Time.IsZero())

	var payload OnAppRegistered
	require.NoError(t, json.Unmarshal(env.Payload, &payload))
	assert.Equal(t, uint32(1), payload.Application.AppID)
	assert.Equal(t, "test_app_id", payload.Application.PolicyAppID)
	assert.Equal(t, "aa:bb", payload.Application.Device.ID)
	assert.True(t, payload.Application.Device.IsSDLAllowed)
}

func TestNatsNotifierClientResponseSubject(t *testing.T) {
	_, nc := natstest.Connect(t)

	sub, err := nc.SubscribeSync("mobile.*.response")
	require.NoError(t, err)
	require.NoError(t, nc.Flush())

	n := NewNatsNotifier(nc, "", "", logger.NewTestLogger())

	err = n.SendClientResponse(context.Background(), &RegisterAppInterfaceResponse{
		ConnectionKey: 7,
		CorrelationID: 3,
		Success:       true,
		ResultCode:    models.ResultSuccess,
	})
	require.NoError(t, err)

	msg, err := sub.NextMsg(5 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, "mobile.7.response", msg.Subject)

	var env rawEnvelope
	require.NoError(t, json.Unmarshal(msg.Data, &env))
	assert.Equal(t, uint32(3), env.CorrelationID)
	assert.Equal(t, FunctionRegisterAppInterface, env.Function)

	var resp RegisterAppInterfaceResponse
	require.NoError(t, json.Unmarshal(env.Payload, &resp))
	assert.Equal(t, models.ResultSuccess, resp.ResultCode)
}

func TestNatsNotifierPublishFailure(t *testing.T) {
	n := NewNatsNotifier(failingPublisher{}, "hmi.", "mobile.", logger.NewTestLogger())

	assert.Equal(t, "hmi.Buttons.OnButtonSubscription", n.HMISubject(FunctionOnButtonSubscription))
	assert.Equal(t, "mobile.9.response", n.ResponseSubject(9))

	assert.False(t, n.SendHMI(context.Background(), OnButtonSubscription{AppID: 1, Name: models.ButtonCustom}))
	assert.False(t, n.SendHMI(context.Background(), nil))

	err := n.SendClientResponse(context.Background(), &RegisterAppInterfaceResponse{ConnectionKey: 9})
	require.ErrorIs(t, err, ErrResponseNotSent)
	require.ErrorIs(t, err, errPublish)

	require.ErrorIs(t, n.SendClientResponse(context.Background(), nil), ErrResponseNotSent)
}

func TestCorrelationIDFrom(t *testing.T) {
	_, ok := CorrelationIDFrom(context.Background())
	assert.False(t, ok)

	id, ok := CorrelationIDFrom(WithCorrelationID(context.Background(), 5))
	assert.True(t, ok)
	assert.Equal(t, uint32(5), id)
}
