package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripSeparators(t *testing.T) {
	assert.Equal(t, "09171234567", StripSeparators("0917-123 4567"))
	assert.Equal(t, "09171234567", StripSeparators(" 09171234567\t"))
	assert.Equal(t, "0917a234567", StripSeparators("0917a234567"))
}

func TestMaskAccountNumber(t *testing.T) {
	assert.Equal(t, "09******567", MaskAccountNumber("09171234567"))
	assert.Equal(t, "***", MaskAccountNumber("091"))
	assert.Equal(t, "", MaskAccountNumber(""))
}
