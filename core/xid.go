package core

// Reserved low identifier values. Transaction IDs below
// FirstNormalTransactionID never belong to a real transaction.
const (
	InvalidTransactionID     uint32 = 0
	BootstrapTransactionID   uint32 = 1
	FrozenTransactionID      uint32 = 2
	FirstNormalTransactionID uint32 = 3

	InvalidMultiXactID uint32 = 0
	FirstMultiXactID   uint32 = 1

	InvalidOid uint32 = 0
)

// FullTransactionID is the wraparound-safe 64-bit transaction identifier:
// a 32-bit epoch in the high half and the 32-bit counter in the low half.
type FullTransactionID uint64

// FullTransactionIDFromParts combines an epoch and a 32-bit counter.
func FullTransactionIDFromParts(epoch, xid uint32) FullTransactionID {
	return FullTransactionID(uint64(epoch)<<32 | uint64(xid))
}

// Epoch returns the high-order epoch component.
func (f FullTransactionID) Epoch() uint32 {
	return uint32(f >> 32)
}

// Xid returns the low-order 32-bit counter component.
func (f FullTransactionID) Xid() uint32 {
	return uint32(f)
}

// TransactionIDIsNormal reports whether xid is outside the reserved range.
func TransactionIDIsNormal(xid uint32) bool {
	return xid >= FirstNormalTransactionID
}
