package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFullTransactionID_Parts(t *testing.T) {
	f := FullTransactionIDFromParts(2, 1000)
	assert.Equal(t, uint32(2), f.Epoch())
	assert.Equal(t, uint32(1000), f.Xid())
	assert.Equal(t, FullTransactionID(0x2000003E8), f)
}

func TestFullTransactionID_ZeroEpoch(t *testing.T) {
	f := FullTransactionIDFromParts(0, 42)
	assert.Equal(t, uint32(0), f.Epoch())
	assert.Equal(t, uint32(42), f.Xid())
}

func TestTransactionIDIsNormal(t *testing.T) {
	assert.False(t, TransactionIDIsNormal(InvalidTransactionID))
	assert.False(t, TransactionIDIsNormal(BootstrapTransactionID))
	assert.False(t, TransactionIDIsNormal(FrozenTransactionID))
	assert.True(t, TransactionIDIsNormal(FirstNormalTransactionID))
	assert.True(t, TransactionIDIsNormal(1000))
}
