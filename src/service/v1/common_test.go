package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToAmount(t *testing.T) {
	v, err := toAmount(decimal.NewFromInt(1000))
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), v)

	v, err = toAmount(decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), v)

	// 负数, 小数与超范围值一律拒绝
	_, err = toAmount(decimal.NewFromInt(-1))
	assert.Error(t, err)

	_, err = toAmount(decimal.NewFromFloat(1.5))
	assert.Error(t, err)

	huge, err := decimal.NewFromString("36893488147419103232") // 2^65
	require.NoError(t, err)
	_, err = toAmount(huge)
	assert.Error(t, err)
}

func TestAuctionDetailsCacheKey(t *testing.T) {
	key := getAuctionDetailsCacheKey("EasySwap", "ETH", "0xABCD", "1")
	assert.Equal(t, "cache:easyswap:eth:auction:0xabcd:1", key)
}
