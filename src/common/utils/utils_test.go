package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToValidateAddress(t *testing.T) {
	// EIP-55 参考向量
	assert.Equal(t, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		ToValidateAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"))
	assert.Equal(t, "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
		ToValidateAddress("0xFB6916095CA1DF60BB79CE92CE3EA74C37C5D359"))
}

func TestIsHexAddress(t *testing.T) {
	assert.True(t, IsHexAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"))
	assert.False(t, IsHexAddress("5aaeb6053f3e94c9b9a09f33669435e7ef1beaed0x"))
	assert.False(t, IsHexAddress("0x123"))
	assert.False(t, IsHexAddress(""))
}

func TestRegisterValidators(t *testing.T) {
	assert.NoError(t, RegisterValidators())
}
