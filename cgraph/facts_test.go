// SPDX-License-Identifier: MIT
package cgraph_test

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestFacts_Scoping covers global and scoped entries.
func TestFacts_Scoping(t *testing.T) {
	f := newFacts(usd)
	f.Assert(visa, domainMerchant, domainProfile).Assert(visa, domainMerchant)
	require.Equal(t, 3, f.Len(), "identical re-assertion is a no-op")

	require.True(t, f.Holds(usd, []string{domainMerchant}))
	require.True(t, f.Holds(visa, nil))
	require.True(t, f.Holds(visa, []string{"x", domainProfile}))
	require.False(t, f.Holds(visa, []string{"x"}))
	require.False(t, f.Holds(amex, nil))

	f.Assert(mastercard, "x")
	require.Equal(t, []fact{visa, mastercard}, f.Values("payment_method", nil))
	require.Equal(t, []fact{visa}, f.Values("payment_method", []string{domainMerchant}))
	require.Empty(t, f.Values("unknown", nil))
}
