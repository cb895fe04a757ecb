package policy

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/hmibroker/pkg/models"
)

func TestStaticGate(t *testing.T) {
	ctx := context.Background()

	gate := NewStaticGate(&Config{
		Enabled:        true,
		DefaultConsent: models.ConsentAllowed,
		Devices: map[string]models.ConsentDecision{
			"AA:BB:CC:DD:EE:FF": models.ConsentDisallowed,
		},
		Apps: map[string]AppData{
			"Test_App_ID": {
				RequestTypes: []string{"PROPRIETARY"},
				HMITypes:     []models.HMIType{models.HMITypeMedia},
			},
		},
	})

	enabled, err := gate.IsEnabled(ctx)
	require.NoError(t, err)
	assert.True(t, enabled)

	consent, err := gate.GetConsent(ctx, "aa:bb:cc:dd:ee:ff")
	require.NoError(t, err)
	assert.Equal(t, models.ConsentDisallowed, consent)

	consent, err = gate.GetConsent(ctx, "unknown-device")
	require.NoError(t, err)
	assert.Equal(t, models.ConsentAllowed, consent)

	data, ok, err := gate.GetInitialAppData(ctx, "test_app_id")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"PROPRIETARY"}, data.RequestTypes)
	assert.Equal(t, []models.HMIType{models.HMITypeMedia}, data.HMITypes)

	_, ok, err = gate.GetInitialAppData(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	gate.SetConsent("unknown-device", models.ConsentDisallowed)
	consent, _ = gate.GetConsent(ctx, "unknown-device")
	assert.Equal(t, models.ConsentDisallowed, consent)
}

func TestStaticGateNilConfig(t *testing.T) {
	gate := NewStaticGate(nil)

	enabled, err := gate.IsEnabled(context.Background())
	require.NoError(t, err)
	assert.False(t, enabled)

	consent, err := gate.GetConsent(context.Background(), "dev")
	require.NoError(t, err)
	assert.Equal(t, models.ConsentUnknown, consent)
}

func TestCachedGateMemoizes(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	next := NewMockGate(ctrl)
	next.EXPECT().GetConsent(gomock.Any(), "dev-1").Return(models.ConsentAllowed, nil).Times(1)
	next.EXPECT().GetInitialAppData(gomock.Any(), "app").Return(AppData{RequestTypes: []string{"HTTP"}}, true, nil).Times(1)
	next.EXPECT().IsEnabled(gomock.Any()).Return(true, nil).Times(2)

	gate := NewCachedGate(next, 0)

	for i := 0; i < 3; i++ {
		consent, err := gate.GetConsent(ctx, "dev-1")
		require.NoError(t, err)
		assert.Equal(t, models.ConsentAllowed, consent)

		data, ok, err := gate.GetInitialAppData(ctx, "app")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []string{"HTTP"}, data.RequestTypes)
	}

	for i := 0; i < 2; i++ {
		enabled, err := gate.IsEnabled(ctx)
		require.NoError(t, err)
		assert.True(t, enabled)
	}
}

func TestCachedGateDoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	unavailable := fmt.Errorf("%w: timeout", ErrPolicyUnavailable)

	next := NewMockGate(ctrl)
	gomock.InOrder(
		next.EXPECT().GetConsent(gomock.Any(), "dev").Return(models.ConsentUnknown, unavailable),
		next.EXPECT().GetConsent(gomock.Any(), "dev").Return(models.ConsentDisallowed, nil),
	)

	gate := NewCachedGate(next, 0)

	_, err := gate.GetConsent(ctx, "dev")
	require.ErrorIs(t, err, ErrPolicyUnavailable)

	consent, err := gate.GetConsent(ctx, "dev")
	require.NoError(t, err)
	assert.Equal(t, models.ConsentDisallowed, consent)
}

func TestCachedGateInvalidateDevice(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	next := NewMockGate(ctrl)
	gomock.InOrder(
		next.EXPECT().GetConsent(gomock.Any(), "dev").Return(models.ConsentUnknown, nil),
		next.EXPECT().GetConsent(gomock.Any(), "dev").Return(models.ConsentAllowed, nil),
	)

	gate := NewCachedGate(next, 0)

	consent, _ := gate.GetConsent(ctx, "dev")
	assert.Equal(t, models.ConsentUnknown, consent)

	gate.InvalidateDevice("dev")

	consent, _ = gate.GetConsent(ctx, "dev")
	assert.Equal(t, models.ConsentAllowed, consent)
}
