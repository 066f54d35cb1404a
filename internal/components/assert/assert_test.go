package assert

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNotNil(t *testing.T) {
	require.NotPanics(t, func() { NotNil("value", 1) })
	require.PanicsWithValue(t, "tel must not be nil", func() { NotNil("tel", nil) })
}
