package products

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	cfg, err := Get("655")
	require.NoError(t, err)
	require.Equal(t, "power_655", cfg.Name)
	require.Equal(t, ShapeNumeric, cfg.Shape)
	require.Equal(t, 6, cfg.PickCount)

	cfg, err = Get("3d")
	require.NoError(t, err)
	require.Equal(t, ShapeTriplet, cfg.Shape)

	_, err = Get("777")
	require.ErrorIs(t, err, ErrUnknownProduct)
}

func TestDefaultUpdateOrderResolves(t *testing.T) {
	for _, key := range DefaultUpdateOrder {
		_, err := Get(key)
		require.NoError(t, err)
	}
}
