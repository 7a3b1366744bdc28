package db

import (
	"testing"
	
	"github.com/stretchr/testify/require"
)

func TestEscapeLike(t *testing.T) {
	require.Equal(t, "benfica", EscapeLike("benfica"))
	require.Equal(t, `50\% off`, EscapeLike("50% off"))
	require.Equal(t, `home\_kit`, EscapeLike("home_kit"))
	require.Equal(t, `a\\b`, EscapeLike(`a\b`))
}
