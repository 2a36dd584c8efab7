// Package core defines the in-memory form of the cluster control structure
// and its fixed binary layout on disk.
package core

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
)

const (
	// ControlVersion is the control-file format tag this tool understands.
	ControlVersion uint32 = 1700

	// ControlFileSize is the full on-disk size of the control file. The
	// structure sits at the front; the remainder is zero padding.
	ControlFileSize = 8192

	// ControlDataSize is the size of the fixed-layout structure itself
	// (64-bit layout, little-endian).
	ControlDataSize = 288
)

// Byte offsets of the interpreted fields within the control structure.
// Everything between them is carried through untouched.
const (
	offSystemIdentifier  = 0
	offControlVersion    = 8
	offCatalogVersion    = 12
	offThisTimeLineID    = 48
	offPrevTimeLineID    = 52
	offNextXid           = 64
	offNextOid           = 72
	offNextMulti         = 76
	offNextMultiOffset   = 80
	offOldestXid         = 84
	offOldestXidDB       = 88
	offOldestMulti       = 92
	offOldestMultiDB     = 96
	offOldestCommitTsXid = 112
	offNewestCommitTsXid = 116
	offWalSegmentSize    = 228
	offCRC               = 284
)

// crc32cTable is a pre-calculated table for the Castagnoli polynomial; the
// control-file checksum is CRC-32C.
var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// Checksum computes the control-file checksum: CRC-32C over every byte that
// precedes the stored CRC field.
func Checksum(image []byte) uint32 {
	return crc32.Checksum(image[:offCRC], crc32cTable)
}

// ControlRecord is the in-memory control structure. Only the fields this
// tool edits are decoded; the rest of the structure rides along in raw and
// is written back unchanged.
type ControlRecord struct {
	SystemIdentifier  uint64
	Version           uint32
	CatalogVersion    uint32
	ThisTimeLineID    uint32
	PrevTimeLineID    uint32
	NextXid           FullTransactionID
	NextOid           uint32
	NextMulti         uint32
	NextMultiOffset   uint32
	OldestXid         uint32
	OldestXidDB       uint32
	OldestMulti       uint32
	OldestMultiDB     uint32
	OldestCommitTsXid uint32
	NewestCommitTsXid uint32
	WalSegmentSize    uint32

	// CRC is the checksum as stored in the source file. Encode never copies
	// it; the output checksum is always recomputed.
	CRC uint32

	raw [ControlDataSize]byte
}

// DecodeControlRecord parses the interpreted fields out of a control-file
// image. buf must hold at least ControlDataSize bytes.
func DecodeControlRecord(buf []byte) (*ControlRecord, error) {
	if len(buf) < ControlDataSize {
		return nil, fmt.Errorf("control data too short: got %d bytes, want at least %d", len(buf), ControlDataSize)
	}

	le := binary.LittleEndian
	rec := &ControlRecord{
		SystemIdentifier:  le.Uint64(buf[offSystemIdentifier:]),
		Version:           le.Uint32(buf[offControlVersion:]),
		CatalogVersion:    le.Uint32(buf[offCatalogVersion:]),
		ThisTimeLineID:    le.Uint32(buf[offThisTimeLineID:]),
		PrevTimeLineID:    le.Uint32(buf[offPrevTimeLineID:]),
		NextXid:           FullTransactionID(le.Uint64(buf[offNextXid:])),
		NextOid:           le.Uint32(buf[offNextOid:]),
		NextMulti:         le.Uint32(buf[offNextMulti:]),
		NextMultiOffset:   le.Uint32(buf[offNextMultiOffset:]),
		OldestXid:         le.Uint32(buf[offOldestXid:]),
		OldestXidDB:       le.Uint32(buf[offOldestXidDB:]),
		OldestMulti:       le.Uint32(buf[offOldestMulti:]),
		OldestMultiDB:     le.Uint32(buf[offOldestMultiDB:]),
		OldestCommitTsXid: le.Uint32(buf[offOldestCommitTsXid:]),
		NewestCommitTsXid: le.Uint32(buf[offNewestCommitTsXid:]),
		WalSegmentSize:    le.Uint32(buf[offWalSegmentSize:]),
		CRC:               le.Uint32(buf[offCRC:]),
	}
	copy(rec.raw[:], buf[:ControlDataSize])
	return rec, nil
}

// ChecksumOK reports whether the stored CRC matches the one recomputed from
// the image the record was decoded from.
func (r *ControlRecord) ChecksumOK() bool {
	return Checksum(r.raw[:]) == r.CRC
}

// Encode serializes the record into a complete ControlFileSize image:
// uninterpreted bytes from the source, current field values, zero padding,
// and a freshly computed CRC.
func (r *ControlRecord) Encode() []byte {
	buf := make([]byte, ControlFileSize)
	copy(buf, r.raw[:])

	le := binary.LittleEndian
	le.PutUint64(buf[offSystemIdentifier:], r.SystemIdentifier)
	le.PutUint32(buf[offControlVersion:], r.Version)
	le.PutUint32(buf[offCatalogVersion:], r.CatalogVersion)
	le.PutUint32(buf[offThisTimeLineID:], r.ThisTimeLineID)
	le.PutUint32(buf[offPrevTimeLineID:], r.PrevTimeLineID)
	le.PutUint64(buf[offNextXid:], uint64(r.NextXid))
	le.PutUint32(buf[offNextOid:], r.NextOid)
	le.PutUint32(buf[offNextMulti:], r.NextMulti)
	le.PutUint32(buf[offNextMultiOffset:], r.NextMultiOffset)
	le.PutUint32(buf[offOldestXid:], r.OldestXid)
	le.PutUint32(buf[offOldestXidDB:], r.OldestXidDB)
	le.PutUint32(buf[offOldestMulti:], r.OldestMulti)
	le.PutUint32(buf[offOldestMultiDB:], r.OldestMultiDB)
	le.PutUint32(buf[offOldestCommitTsXid:], r.OldestCommitTsXid)
	le.PutUint32(buf[offNewestCommitTsXid:], r.NewestCommitTsXid)
	le.PutUint32(buf[offWalSegmentSize:], r.WalSegmentSize)

	le.PutUint32(buf[offCRC:], Checksum(buf[:ControlDataSize]))
	return buf
}
