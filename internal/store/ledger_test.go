package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// A nil ledger is the normal state when DATABASE_URL is unset; every call
// must be a safe no-op.
func TestNilLedgerIsNoOp(t *testing.T) {
	var l *Ledger

	okalu, ok, err := l.Load(context.Background(), "ABC123")
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, [2]int{}, okalu)

	require.NoError(t, l.Save(context.Background(), "ABC123", [2]int{5, 0}))
}
