package kernel_test

import (
	"testing"

	"warehouse/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"ana", "ANA"},
		{"  Matías  ", "MATÍAS"},
		{"juan\t  pérez", "JUAN PÉREZ"},
		{"ñandú", "ÑANDÚ"},
		{"   ", ""},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, kernel.NormalizeName(tc.input), tc.input)
	}
}

func TestSameName(t *testing.T) {
	assert.True(t, kernel.SameName("matías", "MATÍAS "))
	assert.False(t, kernel.SameName("matias", "MATÍAS"))
}
