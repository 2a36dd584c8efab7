package walfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidSegmentSize(t *testing.T) {
	valid := []uint32{1 << 20, 16 << 20, 64 << 20, 1 << 30}
	for _, size := range valid {
		assert.True(t, IsValidSegmentSize(size), "size %d should be valid", size)
	}

	invalid := []uint32{0, 512 << 10, 3 << 20, (16 << 20) + 1, 1<<30 + 1<<20}
	for _, size := range invalid {
		assert.False(t, IsValidSegmentSize(size), "size %d should be invalid", size)
	}
}

func TestParseFileName(t *testing.T) {
	const segSize = 16 * 1024 * 1024 // 256 segments per log id

	tli, segNo, err := ParseFileName("000000010000000000000001", segSize)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), tli)
	assert.Equal(t, uint64(1), segNo)

	tli, segNo, err = ParseFileName("0000000200000003000000FF", segSize)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), tli)
	assert.Equal(t, uint64(3*256+255), segNo)
}

func TestParseFileName_LowercaseHex(t *testing.T) {
	tli, _, err := ParseFileName("0000000a0000000000000001", 16*1024*1024)
	require.NoError(t, err)
	assert.Equal(t, uint32(10), tli)
}

func TestParseFileName_SegmentSizeChangesSegNo(t *testing.T) {
	// With 1 MiB segments a log id spans 4096 segments.
	_, segNo, err := ParseFileName("000000010000000100000002", 1*1024*1024)
	require.NoError(t, err)
	assert.Equal(t, uint64(4096+2), segNo)
}

func TestParseFileName_Invalid(t *testing.T) {
	_, _, err := ParseFileName("00000001", 16*1024*1024)
	require.Error(t, err)

	_, _, err = ParseFileName("00000001000000000000000G", 16*1024*1024)
	require.Error(t, err)
}

func TestIsFileName(t *testing.T) {
	assert.True(t, IsFileName("000000010000000000000001"))
	assert.True(t, IsFileName("0000000a0000000bDEADBEEF"))
	assert.False(t, IsFileName("00000001"))
	assert.False(t, IsFileName("00000001000000000000000Z"))
	assert.False(t, IsFileName("0000000100000000000000012"))
}
