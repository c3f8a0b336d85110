package apestrap

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func TestBlockContext(t *testing.T) {
	ctx := context.Background()

	_, ok := GetHeight(ctx)
	assert.False(t, ok)
	assert.Panics(t, func() { GetChainID(ctx) })

	ctx = WithChainID(WithHeight(ctx, 12), "apestrap-dev")
	height, ok := GetHeight(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(12), height)
	assert.Equal(t, "apestrap-dev", GetChainID(ctx))

	// Block values are set once by the host.
	assert.Panics(t, func() { WithHeight(ctx, 13) })
	assert.Panics(t, func() { WithChainID(ctx, "apestrap-fork") })
}

func TestChainIDFormat(t *testing.T) {
	cases := map[string]struct {
		chainID string
		valid   bool
	}{
		"dashes and digits": {chainID: "apestrap-1", valid: true},
		"underscore":        {chainID: "ape_net", valid: true},
		"twenty chars":      {chainID: "abcdefghijklmnopqrst", valid: true},
		"too short":         {chainID: "ape", valid: false},
		"too long":          {chainID: "abcdefghijklmnopqrstu", valid: false},
		"dot":               {chainID: "ape.net", valid: false},
		"empty":             {chainID: "", valid: false},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.valid, IsValidChainID(tc.chainID))
			if tc.valid {
				ctx := WithChainID(context.Background(), tc.chainID)
				assert.Equal(t, tc.chainID, GetChainID(ctx))
			} else {
				assert.Panics(t, func() { WithChainID(context.Background(), tc.chainID) })
			}
		})
	}
}

func TestContextLogger(t *testing.T) {
	bg := context.Background()
	assert.Equal(t, DefaultLogger, GetLogger(bg))

	logger := log.NewTMLogger(os.Stdout)
	ctx := WithLogger(bg, logger)
	assert.Equal(t, logger, GetLogger(ctx))

	pool := WithLogInfo(WithHeight(ctx, 3), "pool", 1)
	assert.NotEqual(t, GetLogger(ctx), GetLogger(pool))
	height, _ := GetHeight(pool)
	assert.Equal(t, int64(3), height)
}
