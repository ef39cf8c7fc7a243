package mq

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetAuctionLifecycleQueueKey(t *testing.T) {
	assert.Equal(t, "cache:easyswap:eth:auction:lifecycle:events",
		GetAuctionLifecycleQueueKey("EasySwap", "ETH"))
}
