package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	offset, limit := Calculate(1, 10)
	require.Zero(t, offset)
	require.Equal(t, 10, limit)

	offset, limit = Calculate(3, 25)
	require.Equal(t, 50, offset)
	require.Equal(t, 25, limit)

	// bad input falls back to the first default page
	offset, limit = Calculate(0, -5)
	require.Zero(t, offset)
	require.Equal(t, DefaultPageSize, limit)
}
