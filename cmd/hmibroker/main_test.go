package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/hmibroker/pkg/broker"
	"github.com/carverauto/hmibroker/pkg/config"
	"github.com/carverauto/hmibroker/pkg/logger"
	"github.com/carverauto/hmibroker/pkg/models"
)

func TestSampleConfigLoads(t *testing.T) {
	var cfg broker.Config

	require.NoError(t, config.NewConfig(logger.NewTestLogger()).LoadAndValidate(context.Background(), "hmibroker.json", &cfg))

	assert.Equal(t, "hmibroker", cfg.ServiceName)
	require.NotNil(t, cfg.NATS.Security)
	assert.Equal(t, "/etc/hmibroker/certs/root.pem", cfg.NATS.Security.TLS.CAFile)
	require.NotNil(t, cfg.Policy)
	assert.Equal(t, 30*time.Second, time.Duration(cfg.Policy.CacheTTL))
	assert.True(t, cfg.Registration.FailOpen())
	assert.Equal(t, []models.ButtonName{models.ButtonCustom}, cfg.Registration.Buttons())
	assert.Equal(t, 72*time.Hour, time.Duration(cfg.Resumption.TTL))
}
