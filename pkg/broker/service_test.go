package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/hmibroker/internal/natstest"
	"github.com/carverauto/hmibroker/pkg/hmi"
	"github.com/carverauto/hmibroker/pkg/kv"
	"github.com/carverauto/hmibroker/pkg/logger"
	"github.com/carverauto/hmibroker/pkg/models"
	"github.com/carverauto/hmibroker/pkg/policy"
	"github.com/carverauto/hmibroker/pkg/resumption"
)

const registerBody = `{
	"params": {"connection_key": %d, "correlation_id": 7, "device": {"id": "dev-1", "mac_address": "aa:bb"}},
	"msg_params": {
		"app_id": "test_app_id",
		"app_name": "test_app_name_",
		"language_desired": "EN-US",
		"hmi_display_language_desired": "EN-US"
	}
}`

type envelope struct {
	Function      hmi.FunctionID  `json:"function"`
	CorrelationID uint32          `json:"correlation_id"`
	Payload       json.RawMessage `json:"payload"`
}

func startService(t *testing.T, bucket string) (*Service, *nats.Conn) {
	t.Helper()

	srv, nc := natstest.Connect(t)

	svc, err := New(&Config{
		NATS: models.NATSConfig{URL: srv.ClientURL()},
		Policy: &policy.Config{
			Enabled:        true,
			DefaultConsent: models.ConsentAllowed,
			Apps:           map[string]policy.AppData{"test_app_id": {RequestTypes: []string{"HTTP"}}},
		},
		Resumption: resumption.Config{Bucket: bucket},
	}, logger.NewTestLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	require.NoError(t, svc.Start(ctx))
	require.ErrorIs(t, svc.Start(ctx), errAlreadyStarted)

	t.Cleanup(func() { _ = svc.Stop(context.Background()) })

	return svc, nc
}

func register(t *testing.T, nc *nats.Conn, key uint32) envelope {
	t.Helper()

	sub, err := nc.SubscribeSync(responseSubject(key))
	require.NoError(t, err)

	defer func() { _ = sub.Unsubscribe() }()

	require.NoError(t, nc.Publish("mobile.RegisterAppInterface", []byte(fmt.Sprintf(registerBody, key))))

	msg, err := sub.NextMsg(5 * time.Second)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(msg.Data, &env))

	return env
}

func responseSubject(key uint32) string {
	return fmt.Sprintf("mobile.%d.response", key)
}

func TestServiceRegistrationRoundTrip(t *testing.T) {
	svc, nc := startService(t, "")

	hmiSub, err := nc.SubscribeSync("hmi.>")
	require.NoError(t, err)

	require.NoError(t, nc.Publish("hmi.capabilities",
		[]byte(`{"active_ui_language":"DE-DE","active_vr_language":"EN-US","ccpu_version":"ccpu-2"}`)))
	require.Eventually(t, func() bool {
		snap, err := svc.capabilities.Snapshot(context.Background())
		return err == nil && snap.CCPUVersion == "ccpu-2"
	}, 5*time.Second, 20*time.Millisecond)

	env := register(t, nc, 1)
	assert.Equal(t, hmi.FunctionRegisterAppInterface, env.Function)
	assert.Equal(t, uint32(7), env.CorrelationID)

	var resp hmi.RegisterAppInterfaceResponse
	require.NoError(t, json.Unmarshal(env.Payload, &resp))
	assert.Equal(t, models.ResultSuccess, resp.ResultCode)
	assert.Equal(t, models.LanguageDeDE, resp.HMIDisplayLanguage)
	assert.Equal(t, "ccpu-2", resp.CCPUVersion)

	var functions []string
	for len(functions) < 4 {
		msg, err := hmiSub.NextMsg(5 * time.Second)
		require.NoError(t, err)
		functions = append(functions, msg.Subject)
	}

	assert.Equal(t, []string{
		"hmi.capabilities",
		"hmi.BasicCommunication.OnAppRegistered",
		"hmi.Buttons.OnButtonSubscription",
		"hmi.UI.ChangeRegistration",
	}, functions)

	assert.Equal(t, 1, svc.Registry().Len())

	dup := register(t, nc, 1)

	var dupResp hmi.RegisterAppInterfaceResponse
	require.NoError(t, json.Unmarshal(dup.Payload, &dupResp))
	assert.Equal(t, models.ResultApplicationRegisteredAlready, dupResp.ResultCode)
	assert.Equal(t, 1, svc.Registry().Len())
}

func TestServiceResumesAcrossReconnect(t *testing.T) {
	svc, nc := startService(t, "hmibroker_resumption")

	register(t, nc, 1)

	require.True(t, svc.Registry().Update(1, func(app *models.Application) {
		app.HMILevel = models.HMILevelFull
	}))

	require.NoError(t, nc.Publish("mobile.connection.closed", []byte(`{"connection_key": 1}`)))
	require.Eventually(t, func() bool { return svc.Registry().Len() == 0 }, 5*time.Second, 20*time.Millisecond)

	register(t, nc, 2)

	require.Eventually(t, func() bool {
		app, ok := svc.Registry().Get(2)
		return ok && app.Resumed && app.HMILevel == models.HMILevelFull
	}, 5*time.Second, 20*time.Millisecond)
}

func TestServiceIgnoresMalformedEvents(t *testing.T) {
	svc, nc := startService(t, "")

	require.NoError(t, nc.Publish("mobile.connection.closed", []byte(`nope`)))
	require.NoError(t, nc.Publish("hmi.capabilities", []byte(`nope`)))
	require.NoError(t, nc.Publish("hmi.capabilities", nil))
	require.NoError(t, nc.Flush())

	env := register(t, nc, 3)

	var resp hmi.RegisterAppInterfaceResponse
	require.NoError(t, json.Unmarshal(env.Payload, &resp))
	assert.Equal(t, models.ResultSuccess, resp.ResultCode)
	assert.Equal(t, models.DefaultLanguage, resp.Language)
	assert.Equal(t, 1, svc.Registry().Len())
}

func TestServiceDropsRegistrationsAfterStop(t *testing.T) {
	svc, _ := startService(t, "")

	msg := &nats.Msg{Data: []byte(fmt.Sprintf(registerBody, 9))}

	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for j := 0; j < 50; j++ {
				svc.onRegister(msg)
			}
		}()
	}

	require.NoError(t, svc.Stop(context.Background()))
	wg.Wait()

	before := svc.Registry().Len()
	svc.onRegister(msg)
	svc.wg.Wait()

	assert.Equal(t, before, svc.Registry().Len())
}

func TestServiceForgetsDisallowedState(t *testing.T) {
	const bucket = "hmibroker_forget"

	svc, nc := startService(t, bucket)
	ctx := context.Background()

	app := &models.Application{
		ConnectionKey: 5,
		AppID:         "refused_app",
		Name:          "refused",
		HMILevel:      models.HMILevelFull,
		Consent:       models.ConsentDisallowed,
	}
	require.NoError(t, svc.resumption.Persist(ctx, app))
	require.True(t, svc.Registry().InsertIfAbsent(app))

	require.NoError(t, nc.Publish("mobile.connection.closed", []byte(`{"connection_key": 5}`)))
	require.Eventually(t, func() bool { return svc.Registry().Len() == 0 }, 5*time.Second, 20*time.Millisecond)

	backend, err := kv.NewNatsStore(ctx, nc, bucket, time.Duration(svc.cfg.Resumption.TTL))
	require.NoError(t, err)

	_, found, err := resumption.NewKVStore(backend).Load(ctx, "refused_app")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestConfigValidateDefaults(t *testing.T) {
	cfg := &Config{NATS: models.NATSConfig{URL: "nats://127.0.0.1:4222"}, Resumption: resumption.Config{Bucket: "b"}}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "hmibroker", cfg.ServiceName)
	assert.Equal(t, "hmibroker", cfg.NATS.Name)
	assert.Equal(t, "hmi.capabilities", cfg.NATS.CapabilitiesSubject)
	assert.Equal(t, "mobile.RegisterAppInterface", cfg.RegisterSubject())
	assert.Equal(t, "mobile.connection.closed", cfg.ConnectionClosedSubject())
	assert.Equal(t, defaultMaxInFlight, cfg.MaxInFlight)
	assert.Equal(t, defaultResumptionTTL, time.Duration(cfg.Resumption.TTL))

	require.ErrorIs(t, (&Config{}).Validate(), errNATSURLRequired)
	require.ErrorIs(t, (&Config{NATS: models.NATSConfig{URL: "x"}, MaxInFlight: -1}).Validate(), errInvalidInFlight)

	_, err := New(nil, logger.NewTestLogger())
	require.ErrorIs(t, err, errNilConfig)
}
