// Package walfile holds WAL segment naming and sizing rules.
package walfile

import (
	"fmt"
	"strconv"
)

const (
	// FileNameLen is the length of a WAL segment file name: three 8-digit
	// hex groups (timeline, high log number, low segment number).
	FileNameLen = 24

	// MinSegmentSize and MaxSegmentSize bound the supported WAL segment
	// sizes; a valid size is a power of two inside this range.
	MinSegmentSize = 1 * 1024 * 1024
	MaxSegmentSize = 1024 * 1024 * 1024
)

// IsValidSegmentSize reports whether size is a supported WAL segment size.
func IsValidSegmentSize(size uint32) bool {
	return size >= MinSegmentSize && size <= MaxSegmentSize && size&(size-1) == 0
}

// segmentsPerLogID is the number of segments covered by one high log number.
func segmentsPerLogID(segSize uint32) uint64 {
	return uint64(0x100000000) / uint64(segSize)
}

// ParseFileName decodes a WAL segment file name into its timeline and
// absolute segment number, given the segment size in effect.
func ParseFileName(name string, segSize uint32) (tli uint32, segNo uint64, err error) {
	if len(name) != FileNameLen {
		return 0, 0, fmt.Errorf("WAL file name must be %d hex characters, got %q", FileNameLen, name)
	}
	parts := make([]uint64, 3)
	for i := range parts {
		v, err := strconv.ParseUint(name[i*8:(i+1)*8], 16, 32)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid WAL file name %q: %w", name, err)
		}
		parts[i] = v
	}
	tli = uint32(parts[0])
	segNo = parts[1]*segmentsPerLogID(segSize) + parts[2]
	return tli, segNo, nil
}

// IsFileName reports whether name has the shape of a WAL segment file name.
func IsFileName(name string) bool {
	if len(name) != FileNameLen {
		return false
	}
	for _, c := range name {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'A' && c <= 'F':
		case c >= 'a' && c <= 'f':
		default:
			return false
		}
	}
	return true
}
