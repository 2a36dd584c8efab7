// Package override applies requested control-file field changes.
package override

import "github.com/INLOpen/pgctledit/core"

// Unset marks the epoch and multixact-offset overrides as "not requested".
// Their zero value is a legal setting, so absence needs the all-ones
// sentinel instead.
const Unset = ^uint32(0)

// Overrides is the set of requested field changes, assembled and validated
// by the option parser before it reaches Apply. Zero (or Unset where noted)
// means "leave the field alone".
type Overrides struct {
	NextOid           uint32 // 0 = keep
	NextXid           uint32 // 0 = keep; replaces the counter half only
	XidEpoch          uint32 // Unset = keep; replaces the epoch half only
	NextMulti         uint32 // 0 = keep; paired with OldestMulti
	OldestMulti       uint32
	NextMultiOffset   uint32 // Unset = keep
	OldestCommitTsXid uint32 // 0 = keep
	NewestCommitTsXid uint32 // 0 = keep
	OldestXid         uint32 // 0 = keep; resets OldestXidDB
	MinTimeline       uint32 // 0 = keep; derived from the next WAL file name
	WalSegmentSize    uint32 // 0 = keep; validated by the option parser
}

// New returns an Overrides with every field at its "keep" sentinel.
func New() Overrides {
	return Overrides{
		XidEpoch:        Unset,
		NextMultiOffset: Unset,
	}
}

// Apply writes the requested changes into rec. Pure assignment: each
// override touches only its own field or its documented pair, so the
// application order below only matters within a pair.
func (o Overrides) Apply(rec *core.ControlRecord) {
	if o.NextOid != 0 {
		rec.NextOid = o.NextOid
	}

	if o.NextXid != 0 {
		rec.NextXid = core.FullTransactionIDFromParts(rec.NextXid.Epoch(), o.NextXid)
	}

	if o.NextMulti != 0 {
		rec.NextMulti = o.NextMulti

		rec.OldestMulti = o.OldestMulti
		if rec.OldestMulti < core.FirstMultiXactID {
			rec.OldestMulti += core.FirstMultiXactID
		}
		rec.OldestMultiDB = core.InvalidOid
	}

	if o.NextMultiOffset != Unset {
		rec.NextMultiOffset = o.NextMultiOffset
	}

	if o.MinTimeline > rec.ThisTimeLineID {
		rec.ThisTimeLineID = o.MinTimeline
		rec.PrevTimeLineID = o.MinTimeline
	}

	if o.OldestCommitTsXid != 0 {
		rec.OldestCommitTsXid = o.OldestCommitTsXid
	}
	if o.NewestCommitTsXid != 0 {
		rec.NewestCommitTsXid = o.NewestCommitTsXid
	}

	if o.XidEpoch != Unset {
		rec.NextXid = core.FullTransactionIDFromParts(o.XidEpoch, rec.NextXid.Xid())
	}

	if o.OldestXid != 0 {
		rec.OldestXid = o.OldestXid
		rec.OldestXidDB = core.InvalidOid
	}

	if o.WalSegmentSize != 0 {
		rec.WalSegmentSize = o.WalSegmentSize
	}
}
